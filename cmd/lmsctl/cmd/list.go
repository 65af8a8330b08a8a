package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-lmsportal/internal/app/crud"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/course"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/department"
	"github.com/FACorreiaa/go-lmsportal/internal/app/domain/user"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

// adminList builds "<noun> list [--filter]" for an admin-only collection.
func adminList(opts *options, noun, short string, run func(ctx context.Context, e *env, filter string) (pterm.TableData, error)) *cobra.Command {
	var filter string

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + noun,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}
			if _, err := e.require(models.RoleAdmin); err != nil {
				return err
			}

			data, err := run(cmd.Context(), e, filter)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", noun, err)
			}
			if len(data) == 1 {
				pterm.Info.WithWriter(cmd.OutOrStdout()).Printf("No %s found\n", noun)
				return nil
			}
			return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
		},
	}
	list.Flags().StringVar(&filter, "filter", "", "Case-insensitive text filter")

	parent := &cobra.Command{
		Use:   noun,
		Short: short,
	}
	parent.AddCommand(list)
	return parent
}

func newUsersCmd(opts *options) *cobra.Command {
	return adminList(opts, "users", "Manage user accounts", func(ctx context.Context, e *env, filter string) (pterm.TableData, error) {
		users, err := e.api.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		data := pterm.TableData{{"ID", "NAME", "EMAIL", "ROLE"}}
		for _, u := range crud.Filter(users, filter, user.Fields) {
			data = append(data, []string{u.ID, u.FullName, u.Email, string(u.Role)})
		}
		return data, nil
	})
}

func newCoursesCmd(opts *options) *cobra.Command {
	return adminList(opts, "courses", "Manage courses", func(ctx context.Context, e *env, filter string) (pterm.TableData, error) {
		var (
			courses []models.Course
			depts   []models.Department
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			courses, err = e.api.ListCourses(gctx)
			return err
		})
		g.Go(func() (err error) {
			depts, err = e.api.ListDepartments(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		data := pterm.TableData{{"CODE", "NAME", "DEPARTMENT", "CREDITS", "SEMESTER"}}
		for _, r := range crud.Filter(course.JoinDepartments(courses, depts), filter, course.Fields) {
			data = append(data, []string{r.Code, r.Name, r.DepartmentName, strconv.Itoa(r.Credits), strconv.Itoa(r.Semester)})
		}
		return data, nil
	})
}

func newDepartmentsCmd(opts *options) *cobra.Command {
	return adminList(opts, "departments", "Manage departments", func(ctx context.Context, e *env, filter string) (pterm.TableData, error) {
		depts, err := e.api.ListDepartments(ctx)
		if err != nil {
			return nil, err
		}
		data := pterm.TableData{{"ID", "CODE", "NAME", "FACULTY"}}
		for _, d := range crud.Filter(depts, filter, department.Fields) {
			data = append(data, []string{d.ID, d.Code, d.Name, d.Faculty})
		}
		return data, nil
	})
}
