package contstep

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainRunsAllStepsOnSuccess(t *testing.T) {
	var ran []int
	err := New().
		Then("step 0", func() error { ran = append(ran, 0); return nil }).
		Then("step 1", func() error { ran = append(ran, 1); return nil }).
		Then("step 2", func() error { ran = append(ran, 2); return nil }).
		Err()
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, ran)
}

func TestChainStopsAtFirstError(t *testing.T) {
	var ran []int
	err := New().
		Then("step 0", func() error { ran = append(ran, 0); return nil }).
		Then("step 1", func() error { ran = append(ran, 1); return errors.New("boom") }).
		Then("step 2", func() error { ran = append(ran, 2); return nil }).
		Err()
	require.Error(t, err)
	require.Equal(t, []int{0, 1}, ran)
	require.Equal(t, "step 1: boom", err.Error())
}

func TestChainWrapsErrorForErrorsIs(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := New().
		Then("step", func() error { return sentinel }).
		Err()
	require.ErrorIs(t, err, sentinel)
}
