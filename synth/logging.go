package synth

import (
	"go.uber.org/zap"

	hw "hwgraph"
)

func zapModule(m *hw.Module) zap.Field { return zap.String("module", m.Name()) }
