package council

import (
	"context"
	"fmt"
)

// Run executes a full three-stage deliberation and returns the complete
// result. Run never returns an error: member-level failures are absorbed by
// the stages and run-level failures surface as sentinel Stage 3 responses so
// callers always get a renderable result.
func (e *Engine) Run(ctx context.Context, userQuery string, members []Member, subject string) Result {
	if len(members) == 0 {
		return sentinelResult(noMembersMessage)
	}

	stage1 := e.CollectResponses(ctx, userQuery, members)
	if len(stage1) == 0 {
		return sentinelResult(allFailedMessage)
	}

	stage2, labelToModel := e.CollectRankings(ctx, userQuery, stage1, members)
	aggregate := AggregateRankings(stage2, labelToModel)
	stage3 := e.Synthesize(ctx, userQuery, stage1, stage2, members, subject)

	return Result{
		Stage1: stage1,
		Stage2: stage2,
		Stage3: stage3,
		Metadata: Metadata{
			LabelToModel:      labelToModel,
			AggregateRankings: aggregate,
		},
	}
}

// RunStream executes the same deliberation but reports progress through the
// returned channel, one Event per step. The channel is closed when the run
// finishes, errors out, or the context is cancelled. When generateTitle is
// set, a conversation title is produced concurrently with the stages and
// emitted as a title_complete event before the final complete event.
func (e *Engine) RunStream(ctx context.Context, userQuery string, members []Member, subject string, generateTitle bool) <-chan Event {
	events := make(chan Event, 1)

	var titleCh chan string
	if generateTitle {
		titleCh = make(chan string, 1)
		go func() {
			titleCh <- e.GenerateTitle(ctx, userQuery)
		}()
	}

	go func() {
		defer close(events)
		defer func() {
			if r := recover(); r != nil {
				e.log.Error("council", "deliberation panicked", map[string]interface{}{
					"panic": fmt.Sprintf("%v", r),
				})
				e.emit(ctx, events, Event{Type: EventError, Message: fmt.Sprintf("internal error: %v", r)})
			}
		}()

		if len(members) == 0 {
			e.emit(ctx, events, Event{Type: EventError, Message: noMembersMessage})
			return
		}

		if !e.emit(ctx, events, Event{Type: EventStage1Start}) {
			return
		}
		stage1 := e.CollectResponses(ctx, userQuery, members)
		if len(stage1) == 0 {
			e.emit(ctx, events, Event{Type: EventError, Message: allFailedMessage})
			return
		}
		if !e.emit(ctx, events, Event{Type: EventStage1Complete, Stage1: stage1}) {
			return
		}

		if !e.emit(ctx, events, Event{Type: EventStage2Start}) {
			return
		}
		stage2, labelToModel := e.CollectRankings(ctx, userQuery, stage1, members)
		metadata := &Metadata{
			LabelToModel:      labelToModel,
			AggregateRankings: AggregateRankings(stage2, labelToModel),
		}
		if !e.emit(ctx, events, Event{Type: EventStage2Complete, Stage2: stage2, Metadata: metadata}) {
			return
		}

		if !e.emit(ctx, events, Event{Type: EventStage3Start}) {
			return
		}
		stage3 := e.Synthesize(ctx, userQuery, stage1, stage2, members, subject)
		if !e.emit(ctx, events, Event{Type: EventStage3Complete, Stage3: &stage3}) {
			return
		}

		if titleCh != nil {
			select {
			case title := <-titleCh:
				if !e.emit(ctx, events, Event{Type: EventTitleComplete, Title: title}) {
					return
				}
			case <-ctx.Done():
				return
			}
		}

		e.emit(ctx, events, Event{Type: EventComplete})
	}()

	return events
}

// emit delivers one event unless the consumer is gone.
func (e *Engine) emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func sentinelResult(message string) Result {
	return Result{
		Stage1: []Stage1Result{},
		Stage2: []Stage2Result{},
		Stage3: Stage3Result{Model: errModel, Response: message},
		Metadata: Metadata{
			LabelToModel:      map[string]string{},
			AggregateRankings: []AggregateEntry{},
		},
	}
}
