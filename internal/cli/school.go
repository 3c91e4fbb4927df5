package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dimitrije/eduadmin/pkg/dto"
	"github.com/spf13/cobra"
)

func NewSchoolCommand(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "school",
		Short: "Manage schools, their email rules and course name rules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all schools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schools, err := c.schoolAPI().GetSchoolList(cmd.Context())
			if err != nil {
				return err
			}
			if schools == nil {
				schools = []dto.School{}
			}
			return printJSON(cmd.OutOrStdout(), schools)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <schoolName>",
		Short: "Register a school",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.schoolAPI().AddSchool(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <schoolId> <schoolName>",
		Short: "Rename a school",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := c.schoolAPI().EditSchoolName(cmd.Context(), dto.School{ID: &id, SchoolName: args[1]}); err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "root-collection <schoolId>",
		Short: "Print the id of a school's root collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.schoolAPI().GetSchoolRootCollectionID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"schoolId": args[0], "rootCollectionId": id})
		},
	})

	cmd.AddCommand(newEmailRulesCommand(c))
	cmd.AddCommand(newCourseRuleCommand(c))

	return cmd
}

func newEmailRulesCommand(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "email-rules",
		Aliases: []string{"email-rule"},
		Short:   "Manage the email rules that map addresses to a school",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <schoolId>",
		Short: "List a school's email rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := c.schoolAPI().GetEmailRuleList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rules == nil {
				rules = []dto.SchoolEmailRule{}
			}
			return printJSON(cmd.OutOrStdout(), rules)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "bind <schoolId> <emailRule>",
		Short: "Bind a new email rule to a school",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule := dto.SchoolEmailRule{SchoolID: args[0], EmailRule: args[1]}
			if err := c.schoolAPI().BindEmailRule(cmd.Context(), rule); err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit <ruleId> <schoolId> <emailRule>",
		Short: "Change an existing email rule",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			rule := dto.SchoolEmailRule{ID: &id, SchoolID: args[1], EmailRule: args[2]}
			if err := c.schoolAPI().EditEmailRule(cmd.Context(), rule); err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <ruleId>",
		Short: "Delete an email rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.schoolAPI().DeleteEmailRule(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	})

	return cmd
}

type checkResponse struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func newCourseRuleCommand(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course-rule",
		Short: "Manage the dynamic course name form of a school",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <schoolId>",
		Short: "Print a school's course name form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := c.schoolAPI().GetCourseNameRule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if form == nil {
				return fmt.Errorf("school %s has no course name rule", args[0])
			}
			return printJSON(cmd.OutOrStdout(), form)
		},
	})

	cmd.AddCommand(newCourseRuleWriteCommand(c, "bind", "Bind a course name form to a school", false))
	cmd.AddCommand(newCourseRuleWriteCommand(c, "update", "Replace a school's course name form", true))

	cmd.AddCommand(&cobra.Command{
		Use:   "check <schoolId> [field=value...]",
		Short: "Validate course name values against a school's form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}

			form, err := c.schoolAPI().GetCourseNameRule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if form == nil {
				return fmt.Errorf("school %s has no course name rule", args[0])
			}

			errs := form.Validate(values)
			return printJSON(cmd.OutOrStdout(), checkResponse{Valid: len(errs) == 0, Errors: errs})
		},
	})

	return cmd
}

func newCourseRuleWriteCommand(c *console, use, short string, update bool) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   use + " <schoolId> --file form.json",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readCourseForm(file)
			if err != nil {
				return err
			}
			form.SchoolID = args[0]

			if update {
				err = c.schoolAPI().UpdateCourseNameRule(cmd.Context(), form)
			} else {
				err = c.schoolAPI().BindCourseNameRule(cmd.Context(), form)
			}
			if err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file holding the form fields")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readCourseForm(path string) (dto.DynamicCourseForm, error) {
	var form dto.DynamicCourseForm

	data, err := os.ReadFile(path)
	if err != nil {
		return form, fmt.Errorf("failed to read course form: %w", err)
	}
	if err := json.Unmarshal(data, &form); err != nil {
		return form, fmt.Errorf("failed to parse course form %s: %w", path, err)
	}
	return form, nil
}

func parseValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected field=value, got %q", pair)
		}
		values[key] = value
	}
	return values, nil
}
