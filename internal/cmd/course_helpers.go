package cmd

import (
	"context"
	"strings"

	"github.com/sageleaf-labs/canvas-cli/internal/cmdutil"
	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
)

// resolveCourseRef resolves a course argument to a numeric ID. An
// empty reference falls back to the configured default_course.
func resolveCourseRef(ctx context.Context, ref string) (int64, error) {
	if strings.TrimSpace(ref) == "" {
		if cfg := ConfigFromContext(ctx); cfg != nil && cfg.DefaultCourse > 0 {
			return cfg.DefaultCourse, nil
		}
		return 0, clierrors.NewUserError(
			"course is required",
			"Pass a course ID or URL, or set a default with 'cnv config set default_course <id>'",
		)
	}
	return cmdutil.ParseCourseRef(ref)
}
