// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

// Policy decides who may change or delete a lot.
type Policy interface {
	// MutationOwner returns the owner id a mutation by actor is restricted to,
	// or "" when actor may mutate any lot.
	MutationOwner(actor string) string
}

// OpenPolicy lets any authenticated user mutate any lot.
type OpenPolicy struct{}

func (OpenPolicy) MutationOwner(string) string { return "" }

// OwnerPolicy restricts mutations to the lot's owner.
type OwnerPolicy struct{}

func (OwnerPolicy) MutationOwner(actor string) string { return actor }

// PolicyFor selects the policy matching the LOT_OWNER_ONLY_MUTATIONS setting.
func PolicyFor(ownerOnly bool) Policy {
	if ownerOnly {
		return OwnerPolicy{}
	}
	return OpenPolicy{}
}
