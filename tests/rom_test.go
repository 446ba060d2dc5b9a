// Package tests runs the emulator against test ROMs, reporting
// how many of each suite pass.
package tests

import (
	"fmt"
	"testing"
)

// ROMTest is a single test ROM, or a program assembled in the
// test itself.
type ROMTest interface {
	Run(t *testing.T)
	Passed() bool
	Name() string
}

// TestSuite is a collection of tests (often by a single author, or for a single
// feature) that can be run together.
type TestSuite struct {
	name        string
	collections []*TestCollection
}

func (s *TestSuite) NewTestCollection(name string) *TestCollection {
	collection := &TestCollection{name: name}
	s.collections = append(s.collections, collection)
	return collection
}

// Summary returns the number of passing tests and the total.
func (s *TestSuite) Summary() (passed, total int) {
	for _, collection := range s.collections {
		for _, test := range collection.AllTests() {
			total++
			if test.Passed() {
				passed++
			}
		}
	}
	return passed, total
}

func (s *TestSuite) String() string {
	passed, total := s.Summary()
	rate := 0
	if total > 0 {
		rate = passed * 100 / total
	}
	return fmt.Sprintf("%s: %d%% (%d/%d)", s.name, rate, passed, total)
}

type TestCollection struct {
	tests          []ROMTest
	name           string
	subCollections []*TestCollection
}

func (c *TestCollection) Add(tests ...ROMTest) {
	c.tests = append(c.tests, tests...)
}

func (c *TestCollection) NewTestCollection(name string) *TestCollection {
	collection := &TestCollection{name: name}
	c.subCollections = append(c.subCollections, collection)
	return collection
}

// AllTests returns the tests in the collection and, recursively,
// its sub-collections.
func (c *TestCollection) AllTests() []ROMTest {
	tests := append([]ROMTest{}, c.tests...)
	for _, sub := range c.subCollections {
		tests = append(tests, sub.AllTests()...)
	}
	return tests
}

// Run runs all the tests in the collection, including any tests in sub-collections.
func (c *TestCollection) Run(t *testing.T) {
	for _, test := range c.tests {
		test := test
		t.Run(test.Name(), test.Run)
	}
	for _, sub := range c.subCollections {
		sub := sub
		t.Run(sub.name, sub.Run)
	}
}

func runSuite(t *testing.T, suite *TestSuite) {
	for _, collection := range suite.collections {
		collection := collection
		t.Run(collection.name, collection.Run)
	}
	t.Log(suite)
}
