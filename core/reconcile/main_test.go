package reconcile

import (
	"testing"

	"go.uber.org/goleak"
)

// The engine and the index cache start goroutines; none may outlive a test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
