package lbm

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLBM(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "LBM Suite")
}
