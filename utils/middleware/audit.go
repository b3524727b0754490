package middleware

import (
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/cse-dept/cms-api/model"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuditTrail records admin write requests to admin_audit_logs
type AuditTrail struct {
	db *gorm.DB
	wg sync.WaitGroup
}

// NewAuditTrail creates a new audit trail
func NewAuditTrail(db *gorm.DB) *AuditTrail {
	return &AuditTrail{db: db}
}

// Middleware logs every non-GET request that passed authentication.
// Must be mounted after RequireAdmin.
func (a *AuditTrail) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		action := auditAction(c.Method())
		if action == "" {
			return c.Next()
		}

		err := c.Next()

		adminID, ok := GetUserID(c)
		if !ok {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			if fe, isFiber := err.(*fiber.Error); isFiber {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// fiber reuses the ctx once the handler returns
		resource, resourceID := auditResource(c.Path())
		entry := model.AdminAuditLog{
			AdminID:     adminID,
			Action:      action,
			Resource:    resource,
			ResourceID:  resourceID,
			StatusCode:  status,
			IPAddress:   c.IP(),
			UserAgent:   strings.Clone(c.Get(fiber.HeaderUserAgent)),
			Description: c.Method() + " " + strings.Clone(c.Path()),
		}

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if dbErr := a.db.Create(&entry).Error; dbErr != nil {
				log.Printf("audit log write failed for %s: %v", entry.Description, dbErr)
			}
		}()

		return err
	}
}

// Wait blocks until pending audit writes are flushed
func (a *AuditTrail) Wait() {
	a.wg.Wait()
}

func auditAction(method string) string {
	switch method {
	case fiber.MethodPost:
		return model.AuditActionCreate
	case fiber.MethodPut, fiber.MethodPatch:
		return model.AuditActionUpdate
	case fiber.MethodDelete:
		return model.AuditActionDelete
	default:
		return ""
	}
}

// auditResource turns "/api/admin/programs/sections/4/semesters" into
// ("programs/sections/semesters", 4). The last numeric segment wins.
func auditResource(path string) (string, uint) {
	path = strings.TrimPrefix(path, "/api/admin/")
	var (
		names []string
		id    uint
	)
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if n, err := strconv.ParseUint(seg, 10, 32); err == nil {
			id = uint(n)
			continue
		}
		names = append(names, seg)
	}
	return strings.Join(names, "/"), id
}
