package scenario

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

const fixturePath = "../testdata/scenarios.yaml"

type ScenarioTestSuite struct {
	suite.Suite
	suiteData Suite
}

func TestScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(ScenarioTestSuite))
}

func (ts *ScenarioTestSuite) SetupSuite() {
	s, err := LoadSuite(fixturePath)
	ts.Require().NoError(err)
	ts.suiteData = s
}

func (ts *ScenarioTestSuite) TestLoadSuiteParsesAllScenarios() {
	for _, name := range []string{
		"single_task",
		"priority_preemption",
		"quantum_rotation",
		"wait_and_signal",
		"signal_wakes_multiple",
		"nested_forks",
	} {
		ts.Containsf(ts.suiteData, name, "expected scenario %q in fixture", name)
	}
}

func (ts *ScenarioTestSuite) TestPriorityPreemption() {
	tr, err := Run(ts.suiteData["priority_preemption"])
	ts.Require().NoError(err)

	ts.Equal([]string{
		"low:fork:high",
		"high:exec",
		"high:exec",
		"low:exec",
		"low:exec",
	}, tr.Entries())
}

func (ts *ScenarioTestSuite) TestQuantumRotation() {
	tr, err := Run(ts.suiteData["quantum_rotation"])
	ts.Require().NoError(err)

	ts.Equal([]string{
		"A:fork:B", "A:fork:C",
		"B:exec", "B:exec", "C:exec", "C:exec", "A:exec", "A:exec",
		"B:exec", "B:exec", "C:exec", "C:exec", "A:exec", "A:exec",
	}, tr.Entries())
}

func (ts *ScenarioTestSuite) TestWaitAndSignal() {
	tr, err := Run(ts.suiteData["wait_and_signal"])
	ts.Require().NoError(err)

	ts.Equal([]string{
		"producer:fork:consumer",
		"producer:exec",
		"producer:exec",
		"consumer:wait:0",
		"producer:signal:0:1",
	}, tr.Entries())
}

func (ts *ScenarioTestSuite) TestSignalWakesMultiple() {
	tr, err := Run(ts.suiteData["signal_wakes_multiple"])
	ts.Require().NoError(err)

	ts.Equal([]string{
		"w1:fork:w2",
		"w1:wait:0",
		"w2:wait:0",
		"w2:fork:signaler",
		"signaler:signal:0:2",
	}, tr.Entries())
}

func (ts *ScenarioTestSuite) TestNestedForks() {
	tr, err := Run(ts.suiteData["nested_forks"])
	ts.Require().NoError(err)

	ts.Equal([]string{
		"parent:fork:child",
		"child:fork:grandchild",
		"grandchild:exec",
	}, tr.Entries())
}

func (ts *ScenarioTestSuite) TestSingleTask() {
	tr, err := Run(ts.suiteData["single_task"])
	ts.Require().NoError(err)
	ts.Empty(tr.Entries())
}

func (ts *ScenarioTestSuite) TestRunRejectsEmptyConfig() {
	_, err := Run(Config{})
	ts.Error(err)
}
