package match

import "strings"

// Role is the closed set of co-founder roles a primary skill maps to.
// Unrecognized skills land in RoleOther rather than silently scoring zero
// through a missing map entry.
type Role string

const (
	RoleTechnical Role = "Technical"
	RoleBusiness  Role = "Business"
	RoleProduct   Role = "Product"
	RoleOther     Role = "Other"
)

var roleBuckets = []struct {
	role     Role
	keywords []string
}{
	{RoleTechnical, []string{"engineering", "ai/ml", "data science", "development", "full stack", "full-stack", "backend", "frontend"}},
	{RoleBusiness, []string{"business", "marketing", "sales", "operations", "finance", "legal", "strategy"}},
	{RoleProduct, []string{"product", "design", "ux"}},
}

// InferRole classifies a free-text primary skill into a Role by substring
// match, falling back to RoleOther.
func InferRole(primarySkill string) Role {
	skill := strings.ToLower(strings.TrimSpace(primarySkill))
	if skill == "" {
		return RoleOther
	}
	for _, b := range roleBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(skill, kw) {
				return b.role
			}
		}
	}
	return RoleOther
}
