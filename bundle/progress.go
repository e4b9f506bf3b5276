package bundle

import (
	"github.com/shopspring/decimal"

	"github.com/liteseed/ans104/data_item"
)

// Progress tracks how much of a declared item_count has been emitted, for
// callers streaming a large bundle who want to report a completion
// percentage (e.g. a CLI progress bar).
//
// Grounded on the teacher's client/uploader.go PctComplete, which divides
// with github.com/shopspring/decimal rather than raw floats to avoid
// accumulating rounding error across many small updates.
type Progress struct {
	Total uint64
	Done  uint64
}

// PctComplete returns Done/Total as a fractional percentage in [0, 100].
// It returns 0 for an empty bundle (Total == 0) rather than dividing by
// zero.
func (p Progress) PctComplete() float64 {
	if p.Total == 0 {
		return 0
	}
	val := decimal.NewFromInt(int64(p.Done)).Div(decimal.NewFromInt(int64(p.Total))).Mul(decimal.NewFromInt(100))
	f, _ := val.Float64()
	return f
}

// ProgressSink wraps another Sink, tracking Progress as items arrive and
// invoking OnUpdate (if set) after each one, before delegating to Sink.
type ProgressSink struct {
	Sink     Sink
	Progress Progress
	OnUpdate func(Progress)
}

func (s *ProgressSink) Item(index int, item *data_item.DataItem) error {
	s.Progress.Done++
	if s.OnUpdate != nil {
		s.OnUpdate(s.Progress)
	}
	return s.Sink.Item(index, item)
}

func (s *ProgressSink) Done(err error) error {
	return s.Sink.Done(err)
}
