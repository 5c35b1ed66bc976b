package models

// BloodGroups lists the eight ABO/Rh categories in canonical display order.
// Inventory listings and seeding both follow this order.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodGroup reports whether g is one of the eight known groups.
func IsValidBloodGroup(g string) bool {
	return BloodGroupRank(g) >= 0
}

// BloodGroupRank returns the position of g in the canonical order, or -1
// for an unknown group.
func BloodGroupRank(g string) int {
	for i, bg := range BloodGroups {
		if bg == g {
			return i
		}
	}
	return -1
}
