package service

import (
	"os"
	"testing"

	"github.com/archivedesk/minutes/internal/tester"
)

func TestMain(m *testing.M) {
	code := m.Run()
	tester.RemoveDBFile()

	os.Exit(code)
}
