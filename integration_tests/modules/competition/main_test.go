//go:build integration

package competition_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/Black-And-White-Club/irock/integration_tests/testutils"
)

var testEnv *testutils.TestEnvironment

func TestMain(m *testing.M) {
	ctx := context.Background()

	env, err := testutils.NewTestEnvironment(ctx)
	if err != nil {
		log.Fatalf("Failed to set up test environment: %v", err)
	}
	testEnv = env

	code := m.Run()

	env.Cleanup(ctx)
	os.Exit(code)
}
