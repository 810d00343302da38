package controller

import (
	"net/http"

	"github.com/Bayrii/drivelog/database/model"
	"github.com/Bayrii/drivelog/web/service"
	"github.com/Bayrii/drivelog/web/session"

	"github.com/gin-gonic/gin"
)

// recentCount is the size of the dashboard's recent-activity excerpt.
const recentCount = 5

// monthlyWindow is how many months the statistics breakdown covers.
const monthlyWindow = 12

// listRequest is the body of a list call: the optional filter criteria plus
// the requested page.
type listRequest struct {
	model.ExperienceFilter
	Page int `json:"page" form:"page"`
}

// ExperienceController handles the login-gated experience endpoints.
type ExperienceController struct {
	BaseController

	experienceService service.ExperienceService
	lookupService     service.LookupService
}

// NewExperienceController creates the controller and registers its routes
// behind the login check.
func NewExperienceController(g *gin.RouterGroup) *ExperienceController {
	a := &ExperienceController{}
	a.initRouter(g)
	return a
}

func (a *ExperienceController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)

	g.POST("/experience/add", a.add)
	g.GET("/experience/get", a.get)
	g.POST("/experience/update", a.update)
	g.POST("/experience/del", a.del)
	g.POST("/experience/list", a.list)
	g.GET("/experience/code", a.code)

	g.GET("/lookups", a.lookups)
	g.GET("/dashboard", a.dashboard)
	g.GET("/statistics", a.statistics)
}

// recordRef pulls the record reference from the request: a raw id when
// present, the anonymized code otherwise.
func recordRef(c *gin.Context) string {
	if ref := c.Query("id"); ref != "" {
		return ref
	}
	return c.Query("code")
}

// resolveTarget normalizes the reference against the session's identifier
// map. A zero return means the response has already been written.
func (a *ExperienceController) resolveTarget(c *gin.Context) int {
	m := session.GetIDMap(c)
	id, err := a.experienceService.ResolveTarget(recordRef(c), m)
	if err != nil {
		jsonMsg(c, "resolve record reference", err)
		return 0
	}
	return id
}

func (a *ExperienceController) add(c *gin.Context) {
	user := session.GetLoginUser(c)

	sub := &model.ExperienceSubmission{}
	if err := c.ShouldBind(sub); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}

	id, err := a.experienceService.Create(user.Id, sub)
	if err != nil {
		jsonMsg(c, "add experience", err)
		return
	}
	jsonMsgObj(c, "experience added successfully", id, nil)
}

func (a *ExperienceController) get(c *gin.Context) {
	user := session.GetLoginUser(c)

	id := a.resolveTarget(c)
	if id == 0 {
		return
	}

	record, err := a.experienceService.Get(user.Id, id)
	if err != nil {
		jsonMsg(c, "get experience", err)
		return
	}
	jsonObj(c, record, nil)
}

func (a *ExperienceController) update(c *gin.Context) {
	user := session.GetLoginUser(c)

	id := a.resolveTarget(c)
	if id == 0 {
		return
	}

	sub := &model.ExperienceSubmission{}
	if err := c.ShouldBind(sub); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}

	if err := a.experienceService.Update(user.Id, id, sub); err != nil {
		jsonMsg(c, "update experience", err)
		return
	}
	jsonMsg(c, "experience updated successfully", nil)
}

func (a *ExperienceController) del(c *gin.Context) {
	user := session.GetLoginUser(c)

	id := a.resolveTarget(c)
	if id == 0 {
		return
	}

	if err := a.experienceService.Delete(user.Id, id); err != nil {
		jsonMsg(c, "delete experience", err)
		return
	}
	jsonMsg(c, "experience deleted successfully", nil)
}

func (a *ExperienceController) list(c *gin.Context) {
	user := session.GetLoginUser(c)

	req := &listRequest{}
	if err := c.ShouldBind(req); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}

	page, err := a.experienceService.List(user.Id, &req.ExperienceFilter, req.Page)
	if err != nil {
		jsonMsg(c, "list experiences", err)
		return
	}

	// Hand out codes instead of raw ids for the row links.
	m := session.GetIDMap(c)
	page.Codes = make(map[int]string, len(page.Items))
	for _, item := range page.Items {
		page.Codes[item.Id] = a.experienceService.AnonymizeId(m, item.Id)
	}
	if err := session.SaveIDMap(c, m); err != nil {
		jsonMsg(c, "list experiences", service.ErrStore)
		return
	}

	jsonObj(c, page, nil)
}

// code mints (or re-issues) the session-scoped code for one of the caller's
// own records. Ownership is checked before a code is handed out.
func (a *ExperienceController) code(c *gin.Context) {
	user := session.GetLoginUser(c)

	id := a.resolveTarget(c)
	if id == 0 {
		return
	}

	if _, err := a.experienceService.Get(user.Id, id); err != nil {
		jsonMsg(c, "get experience", err)
		return
	}

	m := session.GetIDMap(c)
	code := a.experienceService.AnonymizeId(m, id)
	if err := session.SaveIDMap(c, m); err != nil {
		jsonMsg(c, "anonymize record id", service.ErrStore)
		return
	}
	jsonObj(c, code, nil)
}

func (a *ExperienceController) lookups(c *gin.Context) {
	lookups, err := a.lookupService.GetAll()
	if err != nil {
		jsonMsg(c, "load lookups", err)
		return
	}
	jsonObj(c, lookups, nil)
}

func (a *ExperienceController) dashboard(c *gin.Context) {
	user := session.GetLoginUser(c)

	stats, err := a.experienceService.DashboardStats(user.Id)
	if err != nil {
		jsonMsg(c, "dashboard stats", err)
		return
	}
	recent, err := a.experienceService.Recent(user.Id, recentCount)
	if err != nil {
		jsonMsg(c, "recent experiences", err)
		return
	}

	jsonObj(c, gin.H{"stats": stats, "recent": recent}, nil)
}

func (a *ExperienceController) statistics(c *gin.Context) {
	user := session.GetLoginUser(c)

	categories, err := a.experienceService.CategoryStats(user.Id)
	if err != nil {
		jsonMsg(c, "category stats", err)
		return
	}
	monthly, err := a.experienceService.MonthlyStats(user.Id, monthlyWindow)
	if err != nil {
		jsonMsg(c, "monthly stats", err)
		return
	}

	jsonObj(c, gin.H{"categories": categories, "monthly": monthly}, nil)
}

