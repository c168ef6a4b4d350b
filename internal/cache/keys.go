package cache

import (
	"strconv"

	"github.com/tastavino/recipe-search/internal/domain"
)

// Key layout, shared with operational tooling:
//
//	{entity}:{locale}            listing
//	{entity}:{locale}:{id}       detail
//	{entity}:{locale}:slug:{s}   slug-to-id mapping

func listKey(entity string, locale domain.Locale) string {
	return entity + ":" + string(locale)
}

func detailKey(entity string, locale domain.Locale, id int64) string {
	return entity + ":" + string(locale) + ":" + strconv.FormatInt(id, 10)
}

func slugKey(entity string, locale domain.Locale, slug string) string {
	return entity + ":" + string(locale) + ":slug:" + slug
}
