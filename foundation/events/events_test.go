package events_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out ledger events to registered receivers.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen handling two receivers.", testID)
		{
			evts := events.New()

			ch1 := evts.Acquire("one")
			ch2 := evts.Acquire("two")

			if again := evts.Acquire("one"); again != ch1 {
				t.Fatalf("\t%s\tTest %d:\tShould get the same channel for the same id.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get the same channel for the same id.", success, testID)

			evts.Send("state: MineBlock: blk[1]")

			for i, ch := range []chan string{ch1, ch2} {
				if msg := <-ch; msg != "state: MineBlock: blk[1]" {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, msg)
					t.Fatalf("\t%s\tTest %d:\tShould receive the event on receiver %d.", failed, testID, i)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould receive the event on every receiver.", success, testID)

			if err := evts.Release("one"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to release a receiver: %v", failed, testID, err)
			}
			if _, open := <-ch1; open {
				t.Fatalf("\t%s\tTest %d:\tShould close the released channel.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould close the released channel.", success, testID)

			if err := evts.Release("one"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail releasing an unknown id.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould fail releasing an unknown id.", success, testID)

			evts.Shutdown()
			if _, open := <-ch2; open || evts.Len() != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould close every channel on shutdown.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould close every channel on shutdown.", success, testID)
		}
	}
}

func Test_SendDoesNotBlock(t *testing.T) {
	evts := events.New()
	evts.Acquire("slow")

	// Far more messages than the channel buffers. Send must drop them
	// rather than block.
	for i := 0; i < 1000; i++ {
		evts.Send("event")
	}

	t.Logf("\t%s\tShould not block on a receiver that isn't reading.", success)
}
