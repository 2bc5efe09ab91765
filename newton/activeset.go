// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

// Status classifies an inequality constraint's box position under the
// current active-set proposal.
type Status int

const (
	Inactive Status = 0
	AtLower  Status = -1
	AtUpper  Status = 1
)

// Propose applies the active-set test directly to the primal-in residuals:
// constraint i is active-up if r_up[i] > 0, active-lo if r_lo[i] < 0 (the
// two are mutually exclusive whenever l[i] <= u[i]), inactive otherwise.
// The Newton system needs this discrete decision before it can assemble
// which rows of K should carry coupling.
func Propose(rup, rlo []float64) []Status {
	status := make([]Status, len(rup))
	for i := range status {
		switch {
		case rup[i] > 0:
			status[i] = AtUpper
		case rlo[i] < 0:
			status[i] = AtLower
		default:
			status[i] = Inactive
		}
	}
	return status
}
