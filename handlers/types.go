package handlers

import (
	"blog/feed"
	"blog/models"
)

type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type GroupInfo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type PostInfo struct {
	ID      uint64     `json:"id"`
	Created int64      `json:"created"`
	Text    string     `json:"text"`
	Image   string     `json:"image,omitempty"`
	Author  UserInfo   `json:"author"`
	Group   *GroupInfo `json:"group,omitempty"`
}

type CommentInfo struct {
	ID      uint64   `json:"id"`
	Created int64    `json:"created"`
	Text    string   `json:"text"`
	Author  UserInfo `json:"author"`
}

type PageInfo struct {
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Total   int64      `json:"total"`
	HasNext bool       `json:"has_next"`
	Posts   []PostInfo `json:"posts"`
}

func userInfoFrom(u *models.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username}
}

func groupInfoFrom(g *models.Group) *GroupInfo {
	if g == nil || g.ID == 0 {
		return nil
	}
	return &GroupInfo{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func postInfoFrom(p *models.Post) PostInfo {
	return PostInfo{
		ID:      p.ID,
		Created: p.CreatedAt,
		Text:    p.Text,
		Image:   p.Image,
		Author:  userInfoFrom(&p.User),
		Group:   groupInfoFrom(p.Group),
	}
}

func pageInfoFrom(page *feed.Page) PageInfo {
	result := PageInfo{
		Page:    page.Number,
		PerPage: page.PerPage,
		Total:   page.Total,
		HasNext: page.HasNext,
		Posts:   []PostInfo{},
	}
	for i := range page.Items {
		result.Posts = append(result.Posts, postInfoFrom(&page.Items[i]))
	}
	return result
}
