package services

import (
	"os"
	"testing"

	"github.com/kmuchiri/jikoni-orders/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}
