// Package mock provides in-memory repositories for tests.
package mock

import (
	"sort"
	"sync"
	"time"

	"mysite/app/models"
	"mysite/app/repositories"
)

// Store keeps every record in maps guarded by one lock, so cascades and
// cross-entity checks behave like the real backends.
type Store struct {
	posts    map[int]*models.Post
	comments map[int]*models.Comment
	users    map[int]*models.User

	nextPostID    int
	nextCommentID int
	nextUserID    int
	mutex         sync.RWMutex

	// Err, when set, is returned by every repository call.
	Err error
}

type PostRepository struct{ s *Store }

type CommentRepository struct{ s *Store }

type UserRepository struct{ s *Store }

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.posts = make(map[int]*models.Post)
	s.comments = make(map[int]*models.Comment)
	s.users = make(map[int]*models.User)
	s.nextPostID, s.nextCommentID, s.nextUserID = 1, 1, 1
}

func (s *Store) Posts() repositories.PostRepository       { return &PostRepository{s} }
func (s *Store) Comments() repositories.CommentRepository { return &CommentRepository{s} }
func (s *Store) Users() repositories.UserRepository       { return &UserRepository{s} }
func (s *Store) Close() error                             { return nil }

// Records are copied in and out so callers cannot mutate stored state.
func copyPost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append([]string(nil), p.Tags...)
	c.Author, c.Comments = nil, nil
	return &c
}

func copyComment(cm *models.Comment) *models.Comment {
	c := *cm
	c.Post = nil
	return &c
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (s *Store) slugTaken(post *models.Post) bool {
	for _, p := range s.posts {
		if p.ID != post.ID && p.Slug == post.Slug && p.PublishDate().Equal(post.PublishDate()) {
			return true
		}
	}
	return false
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if m.s.Err != nil {
		return m.s.Err
	}
	if m.s.slugTaken(post) {
		return repositories.ErrSlugTaken
	}
	post.ID = m.s.nextPostID
	m.s.nextPostID++
	m.s.posts[post.ID] = copyPost(post)
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return nil, m.s.Err
	}
	post, exists := m.s.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyPost(post), nil
}

func (m *PostRepository) GetBySlug(publishDate time.Time, slug string) (*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return nil, m.s.Err
	}
	day := models.DateOf(publishDate)
	for _, post := range m.s.posts {
		if post.Slug == slug && post.PublishDate().Equal(day) {
			return copyPost(post), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *PostRepository) Update(post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if m.s.Err != nil {
		return m.s.Err
	}
	if _, exists := m.s.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	if m.s.slugTaken(post) {
		return repositories.ErrSlugTaken
	}
	m.s.posts[post.ID] = copyPost(post)
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if m.s.Err != nil {
		return m.s.Err
	}
	if _, exists := m.s.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.s.posts, id)
	for cid, comment := range m.s.comments {
		if comment.PostID == id {
			delete(m.s.comments, cid)
		}
	}
	return nil
}

func (m *PostRepository) List(filter repositories.PostFilter, limit, offset int) ([]*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return nil, m.s.Err
	}
	posts := m.s.matchPosts(filter)
	repositories.SortPosts(posts)
	return repositories.Window(posts, limit, offset), nil
}

func (m *PostRepository) Count(filter repositories.PostFilter) (int, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return 0, m.s.Err
	}
	return len(m.s.matchPosts(filter)), nil
}

func (s *Store) matchPosts(filter repositories.PostFilter) []*models.Post {
	var posts []*models.Post
	for _, post := range s.posts {
		if filter.Match(post) {
			posts = append(posts, copyPost(post))
		}
	}
	return posts
}

// CommentRepository implementation
func (m *CommentRepository) Create(comment *models.Comment) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if m.s.Err != nil {
		return m.s.Err
	}
	if _, exists := m.s.posts[comment.PostID]; !exists {
		return repositories.ErrNotFound
	}
	comment.ID = m.s.nextCommentID
	m.s.nextCommentID++
	m.s.comments[comment.ID] = copyComment(comment)
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return nil, m.s.Err
	}
	comment, exists := m.s.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyComment(comment), nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if m.s.Err != nil {
		return m.s.Err
	}
	existing, exists := m.s.comments[comment.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	comment.PostID = existing.PostID
	m.s.comments[comment.ID] = copyComment(comment)
	return nil
}

func (m *CommentRepository) Delete(id int) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if m.s.Err != nil {
		return m.s.Err
	}
	if _, exists := m.s.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.s.comments, id)
	return nil
}

func (m *CommentRepository) ListByPost(postID int, activeOnly bool) ([]*models.Comment, error) {
	filter := repositories.CommentFilter{PostID: postID}
	if activeOnly {
		active := true
		filter.Active = &active
	}
	return m.List(filter)
}

func (m *CommentRepository) List(filter repositories.CommentFilter) ([]*models.Comment, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return nil, m.s.Err
	}
	var comments []*models.Comment
	for _, comment := range m.s.comments {
		if filter.Match(comment) {
			comments = append(comments, copyComment(comment))
		}
	}
	repositories.SortComments(comments)
	return comments, nil
}

// UserRepository implementation
func (m *UserRepository) Create(user *models.User) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if m.s.Err != nil {
		return m.s.Err
	}
	for _, u := range m.s.users {
		if u.Username == user.Username {
			return repositories.ErrUsernameTaken
		}
	}
	user.ID = m.s.nextUserID
	m.s.nextUserID++
	m.s.users[user.ID] = copyUser(user)
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return nil, m.s.Err
	}
	user, exists := m.s.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyUser(user), nil
}

func (m *UserRepository) GetByUsername(username string) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return nil, m.s.Err
	}
	for _, user := range m.s.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) List() ([]*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	if m.s.Err != nil {
		return nil, m.s.Err
	}
	users := make([]*models.User, 0, len(m.s.users))
	for _, user := range m.s.users {
		users = append(users, copyUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
