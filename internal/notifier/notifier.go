package notifier

import (
	"fmt"
	"log"

	"StockSeer/internal/model"
	"StockSeer/internal/store"
)

// Notifier fans the run's predictions out to subscribers, one digest each.
type Notifier struct {
	Resolver store.Resolver
	Sink     Sink
}

func NewNotifier(resolver store.Resolver, sink Sink) *Notifier {
	return &Notifier{Resolver: resolver, Sink: sink}
}

// NotifyAll resolves subscribers once and dispatches a digest to each whose
// followed set intersects the given records. A dispatch failure is logged
// and counted but never stops the remaining subscribers. The returned error
// is non-nil only when the resolver itself is unreachable; that aborts the
// whole stage since no subscriber can be resolved.
func (n *Notifier) NotifyAll(records []model.PredictionRecord) (sent int, failures []model.UnitFailure, err error) {
	subs, err := n.Resolver.ListSubscribers()
	if err != nil {
		return 0, nil, fmt.Errorf("list subscribers: %w", err)
	}

	for _, sub := range subs {
		followed, err := n.Resolver.FollowedSymbols(sub.ID)
		if err != nil {
			log.Printf("[ERROR] resolve followed symbols for %s: %v", sub.Email, err)
			failures = append(failures, model.UnitFailure{Unit: sub.Email, Reason: err.Error()})
			continue
		}

		mine := FilterForSubscriber(records, followed)
		if len(mine) == 0 {
			log.Printf("[INFO] no predictions for %s, skipping digest", sub.Email)
			continue
		}

		if err := n.Sink.Send(sub.Email, Subject, FormatDigest(mine)); err != nil {
			log.Printf("[ERROR] send digest to %s: %v", sub.Email, err)
			failures = append(failures, model.UnitFailure{Unit: sub.Email, Reason: err.Error()})
			continue
		}
		log.Printf("[INFO] digest sent to %s (%d predictions)", sub.Email, len(mine))
		sent++
	}
	return sent, failures, nil
}
