package blogservice

import (
	"regexp"

	"github.com/moonhalo/blogapi/internal/common"
)

var (
	TitleRX = regexp.MustCompile("^[a-zA-Z0-9 ]+$")
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 3, 100), "title", "must be between 3 and 100 characters long")
	v.Check(TitleRX.MatchString(title), "title", "must only contain letters, numbers, and spaces")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateTags(v *common.Validator, tags []string) {
	v.Check(len(tags) <= 10, "tags", "must not contain more than 10 tags")
	for _, tag := range tags {
		if len(tag) > 30 {
			v.AddError("tags", "each tag must be at most 30 characters long")
			return
		}
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
