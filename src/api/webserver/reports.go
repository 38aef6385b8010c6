package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/civiguard/civiguard/src/api/data"
	"github.com/civiguard/civiguard/src/api/routing"
	"github.com/civiguard/civiguard/src/api/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Reports struct {
	db       *gorm.DB
	rdb      *redis.Client
	sanitize *bluemonday.Policy
}

func NewReports(db *gorm.DB, rdb *redis.Client) Reports {
	return Reports{db: db, rdb: rdb, sanitize: bluemonday.StrictPolicy()}
}

type reportRequest struct {
	Category    string `json:"category"    binding:"required"`
	Title       string `json:"title"       binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location"    binding:"max=255"`
	Priority    string `json:"priority"    binding:"omitempty,oneof=normale haute critique"`
}

func (h Reports) newReport(req reportRequest) types.Report {
	return types.Report{
		Code:        uuid.NewString(),
		Category:    req.Category,
		Title:       h.sanitize.Sanitize(req.Title),
		Description: h.sanitize.Sanitize(req.Description),
		Location:    h.sanitize.Sanitize(req.Location),
		Priority:    types.PriorityNormale,
		Status:      types.StatusRecu,
	}
}

// Create files a signalement for a logged-in citizen. The responsible role
// is never persisted: it is recomputed from the category on read.
func (h Reports) Create(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	report := h.newReport(req)
	uid := currentUID(c)
	report.ReporterID = &uid

	// Citizens cannot classify their own report; agents and admins can
	// file pre-classified cases (e.g. transcribed phone reports).
	if role := c.GetString("role"); role != types.RoleCitoyen && req.Priority != "" {
		report.Priority = req.Priority
	}

	if err := h.db.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if report.Priority == types.PriorityCritique {
		if err := data.PublishCriticalCase(c, h.rdb, "insert", &report); err != nil {
			log.Printf("reports: publish critical case %d: %v", report.ID, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"id":   report.ID,
		"code": report.Code,
		"role": routing.RoleForCategory(routing.ReportCategory(report.Category)),
	})
}

// CreateAnonymous files a signalement with no identity attached. The
// returned tracking code is the only handle the reporter keeps.
func (h Reports) CreateAnonymous(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	report := h.newReport(req)
	report.Anonymous = true

	if err := h.db.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": report.Code})
}

// List returns the reports visible to the caller: citizens see their own,
// agents see the categories their role owns, admins see everything.
func (h Reports) List(c *gin.Context) {
	role := c.GetString("role")
	q := h.db.Order("created_at DESC").Limit(200)

	switch role {
	case types.RoleCitoyen:
		q = q.Where("reporter_id = ?", currentUID(c))
	case types.RoleAdmin, types.RoleSuperAdmin:
		// unrestricted
	default:
		cats := routing.CategoriesForRole(routing.AgentRole(role))
		if len(cats) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"err": "unknown role"})
			return
		}
		q = q.Where("category IN ?", cats)
	}

	var reports []types.Report
	if err := q.Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h Reports) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad id"})
		return
	}

	var report types.Report
	if err := h.db.First(&report, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "not found"})
		return
	}
	if !h.canView(c, &report) {
		c.JSON(http.StatusForbidden, gin.H{"err": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// canView mirrors the routing policy for pre-filtering; row-level rules in
// the database remain the real enforcement.
func (h Reports) canView(c *gin.Context, r *types.Report) bool {
	role := c.GetString("role")
	switch role {
	case types.RoleCitoyen:
		return r.ReporterID != nil && *r.ReporterID == currentUID(c)
	case types.RoleAdmin, types.RoleSuperAdmin:
		return true
	default:
		return routing.CanAccess(routing.AgentRole(role), routing.ReportCategory(r.Category))
	}
}

// UpdateStatus lets the owning agent (or an admin) reclassify a report.
// Any write that leaves the report at critical priority is published on the
// critical stream so live dashboards and the alert bot pick it up.
func (h Reports) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad id"})
		return
	}

	var req struct {
		Status   string   `json:"status"   binding:"omitempty,oneof=recu en-cours classe transmis"`
		Priority string   `json:"priority" binding:"omitempty,oneof=normale haute critique"`
		AIScore  *float64 `json:"aiScore"  binding:"omitempty,min=0,max=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var report types.Report
	if err := h.db.First(&report, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "not found"})
		return
	}

	role := c.GetString("role")
	if role != types.RoleAdmin && role != types.RoleSuperAdmin &&
		!routing.CanAccess(routing.AgentRole(role), routing.ReportCategory(report.Category)) {
		c.JSON(http.StatusForbidden, gin.H{"err": "category not owned by role"})
		return
	}

	if req.Status != "" {
		report.Status = req.Status
	}
	if req.Priority != "" {
		report.Priority = req.Priority
	}
	if req.AIScore != nil {
		report.AIScore = req.AIScore
	}
	if err := h.db.Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if report.Priority == types.PriorityCritique {
		if err := data.PublishCriticalCase(c, h.rdb, "update", &report); err != nil {
			// Best effort: the row is saved, only the live alert is lost.
			log.Printf("reports: publish critical case %d: %v", report.ID, err)
		}
	}
	c.JSON(http.StatusOK, report)
}

// Track resolves an anonymous tracking code to the report's progress. No
// authentication: the code itself is the capability.
func (h Reports) Track(c *gin.Context) {
	var report types.Report
	if err := h.db.First(&report, "code = ?", c.Param("code")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category":  report.Category,
		"status":    report.Status,
		"priority":  report.Priority,
		"createdAt": report.CreatedAt,
	})
}
