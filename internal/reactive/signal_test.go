package reactive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignal_NotifiesInSubscriptionOrder(t *testing.T) {
	s := New(0)
	var got []string
	s.Subscribe(func(v int) { got = append(got, "a") })
	s.Subscribe(func(v int) { got = append(got, "b") })

	s.Set(1)
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, 1, s.Get())
}

func TestSignal_SetPassesNewValue(t *testing.T) {
	s := New([]string{"x"})
	var seen []string
	s.Subscribe(func(v []string) { seen = v })

	s.Set([]string{"x", "y"})
	require.Equal(t, []string{"x", "y"}, seen)
	require.Equal(t, []string{"x", "y"}, s.Get())
}

func TestSignal_UnsubscribeIsIdempotent(t *testing.T) {
	s := New("")
	calls, other := 0, 0
	unsubA := s.Subscribe(func(string) { calls++ })
	s.Subscribe(func(string) { other++ })

	unsubA()
	unsubA()

	s.Set("after")
	require.Zero(t, calls)
	require.Equal(t, 1, other)
}

func TestSignal_SubscriberMayUnsubscribeDuringNotify(t *testing.T) {
	s := New(0)
	var unsub func()
	calls := 0
	unsub = s.Subscribe(func(int) {
		calls++
		unsub()
	})

	s.Set(1)
	s.Set(2)
	require.Equal(t, 1, calls)
}
