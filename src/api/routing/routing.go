package routing

// ReportCategory is the citizen-declared classification of a signalement.
type ReportCategory string

const (
	CategoryCorruption      ReportCategory = "corruption"
	CategoryDetournement    ReportCategory = "detournement"
	CategoryExtorsion       ReportCategory = "extorsion"
	CategoryAbusPouvoir     ReportCategory = "abus-pouvoir"
	CategoryFavoritisme     ReportCategory = "favoritisme"
	CategoryFraude          ReportCategory = "fraude"
	CategoryAffairesDefense ReportCategory = "affaires-defense"
	CategorySureteEtat      ReportCategory = "surete-etat"
	CategoryRenseignement   ReportCategory = "renseignement"
	CategoryAutre           ReportCategory = "autre"
)

// AgentRole identifies the specialized handler that triages a category.
type AgentRole string

const (
	RoleAgentAnticorruption    AgentRole = "agent-anticorruption"
	RoleAgentJustice           AgentRole = "agent-justice"
	RoleAgentInterieur         AgentRole = "agent-interieur"
	RoleAgentDefense           AgentRole = "agent-defense"
	RoleSousAdminSurete        AgentRole = "sous-admin-surete"
	RoleSousAdminRenseignement AgentRole = "sous-admin-renseignement"
)

// DefaultRole absorbs "autre" and any category not in the table. This is a
// documented policy default, not an error path.
const DefaultRole = RoleAgentInterieur

// Profile describes an agent role for dashboard display plus the categories
// it owns. The category index is derived from Profiles at init, so the
// forward and reverse views cannot diverge.
type Profile struct {
	Role        AgentRole
	Label       string
	Icon        string
	Color       string
	Description string
	Categories  []ReportCategory
}

// Profiles is the fixed routing policy. It ships with a release and is
// never mutated at runtime.
var Profiles = []Profile{
	{
		Role:        RoleAgentAnticorruption,
		Label:       "Agent anti-corruption",
		Icon:        "shield",
		Color:       "#b91c1c",
		Description: "Corruption, détournement de fonds publics et favoritisme",
		Categories:  []ReportCategory{CategoryCorruption, CategoryDetournement, CategoryFavoritisme},
	},
	{
		Role:        RoleAgentJustice,
		Label:       "Agent justice",
		Icon:        "scale",
		Color:       "#1d4ed8",
		Description: "Fraude et extorsion relevant du parquet",
		Categories:  []ReportCategory{CategoryFraude, CategoryExtorsion},
	},
	{
		Role:        RoleAgentInterieur,
		Label:       "Agent intérieur",
		Icon:        "landmark",
		Color:       "#047857",
		Description: "Abus de pouvoir et cas non classés",
		Categories:  []ReportCategory{CategoryAbusPouvoir},
	},
	{
		Role:        RoleAgentDefense,
		Label:       "Agent défense",
		Icon:        "target",
		Color:       "#78350f",
		Description: "Affaires liées à la défense nationale",
		Categories:  []ReportCategory{CategoryAffairesDefense},
	},
	{
		Role:        RoleSousAdminSurete,
		Label:       "Sous-administrateur sûreté de l'État",
		Icon:        "lock",
		Color:       "#581c87",
		Description: "Atteintes à la sûreté de l'État",
		Categories:  []ReportCategory{CategorySureteEtat},
	},
	{
		Role:        RoleSousAdminRenseignement,
		Label:       "Sous-administrateur renseignement",
		Icon:        "eye",
		Color:       "#334155",
		Description: "Signalements relevant du renseignement",
		Categories:  []ReportCategory{CategoryRenseignement},
	},
}

var categoryIndex = buildIndex()

func buildIndex() map[ReportCategory]AgentRole {
	idx := make(map[ReportCategory]AgentRole)
	for _, p := range Profiles {
		for _, c := range p.Categories {
			idx[c] = p.Role
		}
	}
	return idx
}

// RoleForCategory returns the role that owns a category. Total over all
// string inputs: unknown categories and "autre" both route to DefaultRole.
func RoleForCategory(c ReportCategory) AgentRole {
	if role, ok := categoryIndex[c]; ok {
		return role
	}
	return DefaultRole
}

// CategoriesForRole returns the categories whose configured owner is
// exactly this role, filtered from the static profiles.
func CategoriesForRole(r AgentRole) []ReportCategory {
	for _, p := range Profiles {
		if p.Role == r {
			out := make([]ReportCategory, len(p.Categories))
			copy(out, p.Categories)
			return out
		}
	}
	return nil
}

// ProfileForRole returns the display profile for a role, or false when the
// role is not part of the fixed set.
func ProfileForRole(r AgentRole) (Profile, bool) {
	for _, p := range Profiles {
		if p.Role == r {
			return p, true
		}
	}
	return Profile{}, false
}

// CanAccess reports whether a role owns a category. Advisory only: it
// mirrors the database row policies so dashboards can pre-filter, it does
// not enforce them.
func CanAccess(r AgentRole, c ReportCategory) bool {
	return RoleForCategory(c) == r
}

// Roles lists every configured agent role in profile order.
func Roles() []AgentRole {
	out := make([]AgentRole, len(Profiles))
	for i, p := range Profiles {
		out[i] = p.Role
	}
	return out
}
