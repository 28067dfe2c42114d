package audiometa

import (
	"github.com/gocontainer/avmeta/internal/types"
)

// AudioInfo is an alias to types.AudioInfo for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type AudioInfo = types.AudioInfo

// ReplayGainInfo is an alias to types.ReplayGainInfo for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type ReplayGainInfo = types.ReplayGainInfo
