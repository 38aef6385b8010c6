package webserver

import (
	"fmt"
	"net/http"

	"github.com/OneOfOne/xxhash"
	"github.com/civiguard/civiguard/src/api/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Protection timestamps project content so a whistleblower can later prove
// priority. Only a fingerprint of the content is stored, never the content.
type Protection struct {
	db *gorm.DB
}

func NewProtection(db *gorm.DB) Protection {
	return Protection{db: db}
}

func fingerprint(content string) string {
	return fmt.Sprintf("%016x", xxhash.Checksum64([]byte(content)))
}

func (h Protection) Deposit(c *gin.Context) {
	var req struct {
		Title   string `json:"title"   binding:"required,max=255"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	p := types.Protection{
		OwnerID:     currentUID(c),
		Title:       req.Title,
		Fingerprint: fingerprint(req.Content),
		ContentLen:  uint32(len(req.Content)),
	}
	if err := h.db.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          p.ID,
		"fingerprint": p.Fingerprint,
		"timestamp":   p.CreatedAt,
	})
}

func (h Protection) Verify(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	fp := fingerprint(req.Content)
	var deposits []types.Protection
	if err := h.db.Where("fingerprint = ? AND content_len = ?", fp, uint32(len(req.Content))).
		Order("created_at ASC").Find(&deposits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(deposits))
	for _, d := range deposits {
		out = append(out, gin.H{"id": d.ID, "title": d.Title, "timestamp": d.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"fingerprint": fp, "matches": out})
}
