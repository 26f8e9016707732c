package sim

import (
	"go.uber.org/zap"

	hw "hwgraph"
)

func zapModule(b *hw.AlwaysBlock) zap.Field {
	name := "<root>"
	if m := b.Module(); m != nil {
		name = m.Name()
	}
	return zap.String("module", name)
}

func zapCount(n int) zap.Field { return zap.Int("evals", n) }

func zapErr(err error) zap.Field { return zap.Error(err) }
