// Package feed builds the ordered, paginated post views: the global feed,
// per-group and per-author feeds and the personalized following feed.
package feed

import (
	"blog/db"
	"blog/models"
)

// PostsPerPage is fixed product behavior, not caller-configurable.
const PostsPerPage = 10

type Page struct {
	Items   []models.Post
	Number  int   // 1-based
	PerPage int
	Total   int64
	HasNext bool
}

// AuthorView is the profile page payload: the author's posts plus the
// facts the profile affordances need.
type AuthorView struct {
	Author    models.User
	Page      Page
	PostCount int64
	Following bool // whether the viewing actor follows this author
}

func paginate(q *queryState, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	result := Page{Number: page, PerPage: PostsPerPage}
	if err := q.count(&result.Total); err != nil {
		return result, err
	}
	if err := q.slice((page-1)*PostsPerPage, &result.Items); err != nil {
		return result, err
	}
	result.HasNext = int64(page)*PostsPerPage < result.Total
	return result, nil
}

// queryState wraps a base posts query so count and slice run off the
// same filter.
type queryState struct {
	where string
	args  []interface{}
}

func (q *queryState) count(total *int64) error {
	tx := db.Instance.Model(&models.Post{})
	if q.where != "" {
		tx = tx.Where(q.where, q.args...)
	}
	return tx.Count(total).Error
}

func (q *queryState) slice(offset int, items *[]models.Post) error {
	tx := db.Instance.Preload("User").Preload("Group")
	if q.where != "" {
		tx = tx.Where(q.where, q.args...)
	}
	return tx.Order(models.PostDefaultOrder).Limit(PostsPerPage).Offset(offset).Find(items).Error
}

// Global returns all posts, newest first. Pages past the end are empty,
// not an error.
func Global(page int) (Page, error) {
	return paginate(&queryState{}, page)
}

// Group returns the group's posts, or models.ErrNotFound for an
// unknown slug.
func Group(slug string, page int) (models.Group, Page, error) {
	group, err := models.GroupBySlug(slug)
	if err != nil {
		return group, Page{}, err
	}
	p, err := paginate(&queryState{where: "group_id = ?", args: []interface{}{group.ID}}, page)
	return group, p, err
}

// Author returns the author's posts together with their total post count
// and whether viewerID (0 for anonymous) follows them. Unknown username
// yields models.ErrNotFound.
func Author(username string, viewerID uint64, page int) (AuthorView, error) {
	view := AuthorView{}
	author, err := models.UserByUsername(username)
	if err != nil {
		return view, err
	}
	view.Author = author
	view.Page, err = paginate(&queryState{where: "user_id = ?", args: []interface{}{author.ID}}, page)
	if err != nil {
		return view, err
	}
	view.PostCount = view.Page.Total
	view.Following = models.IsFollowing(viewerID, author.ID)
	return view, nil
}

// Following returns posts authored by anyone the viewer follows. An empty
// follow set yields an empty page.
func Following(viewerID uint64, page int) (Page, error) {
	ids, err := models.FollowedAuthorIDs(viewerID)
	if err != nil {
		return Page{}, err
	}
	if len(ids) == 0 {
		if page < 1 {
			page = 1
		}
		return Page{Number: page, PerPage: PostsPerPage}, nil
	}
	return paginate(&queryState{where: "user_id IN ?", args: []interface{}{ids}}, page)
}
