package pipeline

import (
	"github.com/a11ykit/touchpipe/internal/ports"
	"github.com/a11ykit/touchpipe/internal/stage"
)

// enableFeatures builds the transformation chain from the feature bitmask.
// The order is fixed: magnifier first, touch explorer second, the filter
// itself as terminal sink.
func (f *Filter) enableFeatures() {
	if f.features&FeatureScreenMagnifier != 0 {
		f.magnifier = f.newMagnifier()
		f.magnifier.SetNext(f)
		f.handler = f.magnifier
	}
	if f.features&FeatureTouchExploration != 0 {
		f.explorer = f.newTouchExplorer()
		f.explorer.SetNext(f)
		if f.handler != nil {
			f.handler.SetNext(f.explorer)
		} else {
			f.handler = f.explorer
		}
	}
}

// disableFeatures tears down every instantiated stage. Each receives Clear
// then Destroy; instances are never reused across rebuilds.
func (f *Filter) disableFeatures() {
	if f.explorer != nil {
		f.explorer.Clear()
		f.explorer.Destroy()
		f.explorer = nil
	}
	if f.magnifier != nil {
		f.magnifier.Clear()
		f.magnifier.Destroy()
		f.magnifier = nil
	}
	f.handler = nil
}

func (f *Filter) newMagnifier() ports.Stage {
	if f.factories.NewMagnifier != nil {
		return f.factories.NewMagnifier()
	}
	return stage.NewMagnifier(f.logger)
}

func (f *Filter) newTouchExplorer() ports.Stage {
	if f.factories.NewTouchExplorer != nil {
		return f.factories.NewTouchExplorer()
	}
	return stage.NewTouchExplorer(f.logger)
}
