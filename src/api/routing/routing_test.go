package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleForCategory(t *testing.T) {
	tests := []struct {
		category ReportCategory
		want     AgentRole
	}{
		{CategoryCorruption, RoleAgentAnticorruption},
		{CategoryDetournement, RoleAgentAnticorruption},
		{CategoryFavoritisme, RoleAgentAnticorruption},
		{CategoryFraude, RoleAgentJustice},
		{CategoryExtorsion, RoleAgentJustice},
		{CategoryAbusPouvoir, RoleAgentInterieur},
		{CategoryAffairesDefense, RoleAgentDefense},
		{CategorySureteEtat, RoleSousAdminSurete},
		{CategoryRenseignement, RoleSousAdminRenseignement},
		{CategoryAutre, RoleAgentInterieur},
		{ReportCategory("unknown-made-up-value"), RoleAgentInterieur},
		{ReportCategory(""), RoleAgentInterieur},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoleForCategory(tt.category), "category %q", tt.category)
	}
}

func TestForwardReverseConsistency(t *testing.T) {
	for _, role := range Roles() {
		for _, c := range CategoriesForRole(role) {
			assert.Equal(t, role, RoleForCategory(c),
				"category %q listed under role %q but routes elsewhere", c, role)
		}
	}
}

func TestCategoriesForRoleDisjoint(t *testing.T) {
	seen := map[ReportCategory]AgentRole{}
	for _, role := range Roles() {
		for _, c := range CategoriesForRole(role) {
			prev, dup := seen[c]
			assert.False(t, dup, "category %q owned by both %q and %q", c, prev, role)
			seen[c] = role
		}
	}
}

func TestCanAccess(t *testing.T) {
	cats := []ReportCategory{
		CategoryCorruption, CategoryDetournement, CategoryExtorsion,
		CategoryAbusPouvoir, CategoryFavoritisme, CategoryFraude,
		CategoryAffairesDefense, CategorySureteEtat, CategoryRenseignement,
		CategoryAutre,
	}
	for _, role := range Roles() {
		for _, c := range cats {
			assert.Equal(t, RoleForCategory(c) == role, CanAccess(role, c),
				"role %q category %q", role, c)
		}
	}
}

func TestCanAccessUnknownCategory(t *testing.T) {
	assert.True(t, CanAccess(RoleAgentInterieur, "quelque-chose-de-nouveau"))
	assert.False(t, CanAccess(RoleAgentJustice, "quelque-chose-de-nouveau"))
}

func TestCategoriesForRoleCopies(t *testing.T) {
	a := CategoriesForRole(RoleAgentAnticorruption)
	a[0] = "tampered"
	b := CategoriesForRole(RoleAgentAnticorruption)
	assert.Equal(t, CategoryCorruption, b[0])
}

func TestProfileForRole(t *testing.T) {
	p, ok := ProfileForRole(RoleSousAdminRenseignement)
	assert.True(t, ok)
	assert.NotEmpty(t, p.Label)
	assert.NotEmpty(t, p.Color)

	_, ok = ProfileForRole("role-inconnu")
	assert.False(t, ok)
}
