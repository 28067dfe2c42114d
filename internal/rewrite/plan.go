// Package rewrite decides, for one write of a container's tag or index
// region, whether the existing region can be spliced in place (old
// bytes replaced, padding absorbing the size delta) or whether the
// container needs a full rewrite with fresh padding interleaved at the
// chosen position.
package rewrite

import "github.com/gocontainer/avmeta/internal/types"

// Policy mirrors the padding/position behavior settings a caller sets
// on a File before calling Save/SaveAs (read by File.applyChanges).
type Policy struct {
	MinPadding       int64
	MaxPadding       int64
	PreferredPadding int64
	ForceRewrite     bool
	Position         types.ElementPosition
	ForcePosition    bool
	// PositionSupported reports, for the concrete container, whether
	// Position is achievable at all (some formats only ever place tags
	// at one end). Plan fails with NotSupportedError when ForcePosition
	// is set and this is false.
	PositionSupported bool
}

// Decision is the planner's output for one region rewrite.
type Decision struct {
	// Splice is true when the existing region can be overwritten in
	// place; false means the caller must perform the container's full
	// rewrite path.
	Splice bool
	// PaddingBytes is how many padding bytes to leave around the
	// region: the absorbed slack when splicing, or PreferredPadding
	// when performing a full rewrite.
	PaddingBytes int64
	// Position is the position to use for a full rewrite (echoes
	// Policy.Position; irrelevant when Splice is true, since splicing
	// never changes a region's side of the media data).
	Position types.ElementPosition
}

// Plan decides how to lay out a region whose old encoded size was
// oldSize and whose new encoded size is newSize.
//
// Splicing is chosen when !ForceRewrite and the size delta can be
// absorbed by widening or shrinking the surrounding padding while
// keeping it within [MinPadding, MaxPadding]. existingPadding is the
// padding currently adjacent to the region (0 if the format has none
// or none was detected).
func Plan(p Policy, oldSize, newSize, existingPadding int64) (Decision, error) {
	if p.ForcePosition && !p.PositionSupported {
		return Decision{}, &types.NotSupportedError{
			Operation: "forced tag/index position",
		}
	}

	if !p.ForceRewrite {
		delta := newSize - oldSize
		resultingPadding := existingPadding - delta
		if resultingPadding >= p.MinPadding && resultingPadding <= p.MaxPadding {
			return Decision{Splice: true, PaddingBytes: resultingPadding, Position: p.Position}, nil
		}
	}

	preferred := p.PreferredPadding
	if preferred < p.MinPadding {
		preferred = p.MinPadding
	}
	if preferred > p.MaxPadding {
		preferred = p.MaxPadding
	}
	return Decision{Splice: false, PaddingBytes: preferred, Position: p.Position}, nil
}
