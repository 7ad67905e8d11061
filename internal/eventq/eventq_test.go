package eventq

import "testing"

func TestOfferSendsWhenSpace(t *testing.T) {
	ch := make(chan int, 1)
	if !Offer(ch, 7) {
		t.Fatal("offer to empty buffered channel should succeed")
	}
	if got := <-ch; got != 7 {
		t.Fatalf("got = %d, want 7", got)
	}
}

func TestOfferDropsWhenFull(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 1
	if Offer(ch, 2) {
		t.Fatal("offer to full channel should report false")
	}
}

func TestOfferSurvivesClosedChannel(t *testing.T) {
	ch := make(chan int)
	close(ch)
	if Offer(ch, 1) {
		t.Fatal("offer to closed channel should report false")
	}
}
