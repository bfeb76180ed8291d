package empower

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CapturableTestSuite struct {
	suite.Suite
}

func (suite *CapturableTestSuite) TestRecorder() {
	r := NewRecorder()
	suite.Equal(3, r.Capt(3, "arguments/0/left"))
	suite.Equal(4, r.Capt(4, "arguments/0/right"))
	c := r.Expr(false, Source{Content: "assert(a == b)"})
	suite.Equal(false, c.Value)
	suite.Equal([]Event{{3, "arguments/0/left"}, {4, "arguments/0/right"}}, c.Events)
	suite.Empty(r.Expr(true, Source{}).Events)
}

func (suite *CapturableTestSuite) TestConcurrentCapt() {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Capt(i, "arguments/0")
		}(i)
	}
	wg.Wait()
	suite.Len(r.Expr(nil, Source{}).Events, 50)
}

func (suite *CapturableTestSuite) TestIsCaptured() {
	var none *Captured
	suite.True(isCaptured(&Captured{}))
	suite.False(isCaptured(none))
	suite.False(isCaptured(1))
}

func TestCapturableTestSuite(t *testing.T) {
	suite.Run(t, new(CapturableTestSuite))
}
