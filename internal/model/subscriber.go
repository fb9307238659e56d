package model

// Subscriber is a digest recipient. The followed-symbol set lives in the
// subscription store and is resolved per run, not carried on the struct.
type Subscriber struct {
	ID    int64
	Email string
}
