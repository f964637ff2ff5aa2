package player

// Stats counts what the binding did with property updates.
type Stats struct {
	FullResets      int
	DeltasForwarded int
	SkippedUpdates  int
	EncodeFailures  int
	NativeFailures  int
}
