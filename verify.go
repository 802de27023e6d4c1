package main

// verify - checks on generated IR

import (
	"sort"

	"github.com/pkg/errors"
)

// verify checks that m is in SSA form: every register is assigned
// exactly once, no register is read before it is assigned, and the
// returned register exists. It reports every violation it finds.
func verify(m *Module) error {
	var errs []error
	defined := map[string]bool{m.Param: true}
	for i, l := range m.Code {
		for _, a := range l.Args {
			if a.isReg() && !defined[a.Reg] {
				errs = append(errs, errors.Errorf("instruction %d: %%%s read before assignment", i, a.Reg))
			}
		}
		if defined[l.Dst] {
			errs = append(errs, errors.Errorf("instruction %d: %%%s assigned twice", i, l.Dst))
		}
		if _, ok := irOpNames[l.Op]; !ok {
			errs = append(errs, errors.Errorf("instruction %d: unknown operation %d", i, l.Op))
		}
		defined[l.Dst] = true
	}
	if !defined[m.Ret] {
		errs = append(errs, errors.Errorf("returned register %%%s is never assigned", m.Ret))
	}
	return multiError(errs...)
}

// liveSets computes, for each instruction of m, the set of registers
// that are live after it executes. The walk is backwards from the
// return: a register is live from its assignment to its last read.
func liveSets(m *Module) [][]string {
	live := map[string]bool{m.Ret: true}
	sets := make([][]string, len(m.Code))
	for i := len(m.Code) - 1; i >= 0; i-- {
		l := m.Code[i]
		for r := range live {
			sets[i] = append(sets[i], r)
		}
		sort.Strings(sets[i])
		delete(live, l.Dst)
		for _, a := range l.Args {
			if a.isReg() {
				live[a.Reg] = true
			}
		}
	}
	return sets
}

// maxLive is the largest number of registers live at once, which is
// the number of double registers the function needs without
// spilling.
func maxLive(m *Module) int {
	n := 0
	for _, s := range liveSets(m) {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}
