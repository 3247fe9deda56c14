package policy

// FIFO evicts the frame that has been occupied longest, per the
// frame table's own occupation-order queue.
type FIFO struct{}

func (*FIFO) Name() string { return "FIFO" }

func (*FIFO) SelectVictim(fv FrameView) int32 {
	return fv.NextFIFO()
}
