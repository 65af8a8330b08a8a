package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/domain"
	"github.com/FACorreiaa/go-lmsportal/internal/app/forms"
)

const (
	msgUpdated      = "Profile updated"
	msgUpdateFailed = "Profile update failed!"
)

// ProfilesHandler serves the profile page of any signed-in user.
type ProfilesHandler struct {
	*domain.BaseHandler
}

func NewProfilesHandler(base *domain.BaseHandler) *ProfilesHandler {
	return &ProfilesHandler{BaseHandler: base}
}

func (h *ProfilesHandler) ShowProfilePage(c *gin.Context) {
	sess := h.Session(c)
	f := forms.Profile{FullName: sess.FullName}
	h.RenderPage(c, "Profile", "Profile", ProfilePage(sess, f, nil, ""))
}

// UpdateProfile changes the display name. The email is shown but cannot
// be edited.
func (h *ProfilesHandler) UpdateProfile(c *gin.Context) {
	sess := h.Session(c)
	var f forms.Profile
	if err := c.ShouldBind(&f); err != nil {
		h.RenderPartial(c, http.StatusBadRequest, InfoSection(sess, f, nil, "Invalid form submission"))
		return
	}
	if errs := forms.FieldErrors(f.Validate()); len(errs) > 0 {
		h.RenderPartial(c, http.StatusUnprocessableEntity, InfoSection(sess, f, errs, ""))
		return
	}

	if err := h.API(c).UpdateProfile(c.Request.Context(), f.Payload()); err != nil {
		if h.ExpiredSession(c, err) {
			return
		}
		msg := h.BackendError(c, "update profile", err, msgUpdateFailed)
		h.Failure(c, msgUpdateFailed)
		h.RenderPartial(c, domain.FailureStatus(err), InfoSection(sess, f, nil, msg))
		return
	}
	h.Logger.Info("Profile updated", zap.String("userID", sess.ID))
	h.Success(c, msgUpdated)
	h.RenderPartial(c, http.StatusOK, InfoSection(sess, f, nil, ""))
}
