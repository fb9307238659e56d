package store

import "StockSeer/internal/model"

// Resolver is the query surface of the relational store: the symbol universe
// plus subscribers and their followed symbols. The pipeline treats it as
// authoritative and does one resolution pass per run.
type Resolver interface {
	ListSymbols() ([]string, error)
	ListSubscribers() ([]model.Subscriber, error)
	FollowedSymbols(subscriberID int64) ([]string, error)
	Close() error
}
