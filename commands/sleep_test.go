package commands

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	assert.ErrorIs(t, Sleep(ctx, 60), context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 30*time.Second)
}

func ExampleVersionString() {
	defer func(v string) { Version = v }(Version)
	Version = "1.2.3"

	fmt.Println(VersionString())
	// Output: minish v1.2.3
}
