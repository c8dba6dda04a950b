package validator

import (
	"net/url"
	"strings"
)

type categoryRule struct {
	fragment string
	category Category
}

// categoryRules is evaluated in order; the first matching path fragment wins.
var categoryRules = []categoryRule{
	{"/jobs/", CategoryJobListings},
	{"/careers/", CategoryJobListings},
	{"/job-", CategoryJobListings},
	{"/articles/", CategoryArticles},
	{"/blog/", CategoryArticles},
	{"/post/", CategoryArticles},
	{"/news/", CategoryNews},
	{"/press/", CategoryNews},
	{"/events/", CategoryEvents},
	{"/webinars/", CategoryEvents},
	{"/about/", CategoryCompany},
	{"/company/", CategoryCompany},
	{"/products/", CategoryProducts},
	{"/services/", CategoryProducts},
	{"/support/", CategorySupport},
	{"/help/", CategorySupport},
}

// Categorize maps a URL to a content category by case-sensitive substring
// matching over its path. It is pure: the same URL always yields the same
// category, regardless of fetch outcome. Unparsable URLs are Uncategorized.
func Categorize(rawURL string) Category {
	u, err := url.Parse(rawURL)
	if err != nil {
		return CategoryUncategorized
	}
	for _, rule := range categoryRules {
		if strings.Contains(u.Path, rule.fragment) {
			return rule.category
		}
	}
	return CategoryUncategorized
}
