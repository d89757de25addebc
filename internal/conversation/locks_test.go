package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLocks_ExclusivePerSession(t *testing.T) {
	var locks sessionLocks

	release := locks.acquire("s1")
	acquired := make(chan struct{})
	go func() {
		defer close(acquired)
		locks.acquire("s1")()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder entered while the session was locked")
	case <-time.After(20 * time.Millisecond):
	}

	// Other sessions are not blocked.
	locks.acquire("s2")()

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the released session")
	}
	assert.Equal(t, 0, locks.len())
}

func TestSessionLocks_DropsIdleEntries(t *testing.T) {
	var locks sessionLocks

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			locks.acquire(fmt.Sprintf("s%d", i%5))()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, locks.len())
}

func TestChatService_LockTableStaysBounded(t *testing.T) {
	svc, _ := newTestService(t, &stubBookingStore{}, nil)
	ctx := context.Background()

	const sessions = 1000
	for i := 0; i < sessions; i++ {
		id := fmt.Sprintf("guest-%d", i)
		_, err := svc.ProcessMessage(ctx, MessageRequest{SessionID: id, Message: "help"})
		require.NoError(t, err)
		require.NoError(t, svc.ResetSession(ctx, id))
	}
	assert.Equal(t, 0, svc.locks.len())
}
