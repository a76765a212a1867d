//go:build integration

package scoreintegrationtests

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/Black-And-White-Club/barbershop-bot/integration_tests/testutils"
)

var testDB *testutils.Database

func TestMain(m *testing.M) {
	ctx := context.Background()
	db, err := testutils.NewDatabase(ctx)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	testDB = db

	code := m.Run()

	testDB.Close(ctx)
	os.Exit(code)
}
