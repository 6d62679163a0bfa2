package services

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
)

var smallGif = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

type ServicesSuite struct {
	suite.Suite
	mediaRoot string
}

func TestServicesSuite(t *testing.T) {
	suite.Run(t, new(ServicesSuite))
}

func (s *ServicesSuite) SetupTest() {
	db, err := database.Open("sqlite", filepath.Join(s.T().TempDir(), "yatube.db"), "")
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigration(db))
	database.C = db

	s.mediaRoot = s.T().TempDir()
	viper.Set("media.root", s.mediaRoot)
	viper.Set("page_size", 10)
}

func (s *ServicesSuite) TearDownTest() {
	viper.Reset()
}

func (s *ServicesSuite) newAccount(name string) models.Account {
	account, err := NewAccount(name, "password", "", "")
	s.Require().NoError(err)
	return account
}

func (s *ServicesSuite) newGroup(slug string) models.Group {
	group, err := NewGroup("group "+slug, slug, "description")
	s.Require().NoError(err)
	return group
}

func (s *ServicesSuite) newPost(author models.Account, group *models.Group, text string) models.Post {
	item := models.Post{Text: text}
	if group != nil {
		item.GroupID = &group.ID
	}
	post, err := NewPost(author, item)
	s.Require().NoError(err)
	return post
}

func (s *ServicesSuite) isFollowing(user, author models.Account) bool {
	following, err := IsFollowing(user, author)
	s.Require().NoError(err)
	return following
}

func (s *ServicesSuite) fileHeader(name string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", name)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func (s *ServicesSuite) TestAccounts() {
	s.Run("rejects duplicated names", func() {
		s.newAccount("leo")
		_, err := NewAccount("leo", "another", "", "")
		s.ErrorIs(err, ErrAccountExists)
	})

	s.Run("rejects invalid names", func() {
		_, err := NewAccount("with space", "password", "", "")
		s.Error(err)
	})

	s.Run("authenticates with the right password only", func() {
		account, err := AuthenticateAccount("leo", "password")
		s.Require().NoError(err)
		s.Equal("leo", account.Name)

		_, err = AuthenticateAccount("leo", "wrong")
		s.ErrorIs(err, ErrInvalidCredentials)
		_, err = AuthenticateAccount("nobody", "password")
		s.ErrorIs(err, ErrInvalidCredentials)
	})
}

func (s *ServicesSuite) TestEnsureGroups() {
	s.Require().NoError(EnsureGroups([]GroupConfig{{Title: "Cats", Slug: "cats", Description: "old"}}))
	s.Require().NoError(EnsureGroups([]GroupConfig{{Title: "Cats", Slug: "cats", Description: "new"}}))

	groups, err := ListGroup()
	s.Require().NoError(err)
	s.Require().Len(groups, 1)
	s.Equal("new", groups[0].Description)

	s.Error(EnsureGroups([]GroupConfig{{Title: "Bad", Slug: "bad slug"}}))
}

func (s *ServicesSuite) TestNewPost() {
	author := s.newAccount("author")
	group := s.newGroup("test_slug")

	post := s.newPost(author, &group, "Тестовый текст, написанный для проверки языка")
	s.Equal(author.ID, post.AuthorID)
	s.Equal("ru", post.Language)

	stored, err := GetPost(database.C, post.ID)
	s.Require().NoError(err)
	s.Equal(author.ID, stored.Author.ID)
	s.Require().NotNil(stored.Group)
	s.Equal(group.ID, stored.Group.ID)

	_, err = NewPost(author, models.Post{})
	s.Error(err)
}

func (s *ServicesSuite) TestEditPost() {
	author := s.newAccount("author")
	post := s.newPost(author, nil, "original text")
	createdAt := post.CreatedAt

	post.Text = "edited text"
	post.CreatedAt = time.Now().Add(48 * time.Hour)
	_, err := EditPost(post)
	s.Require().NoError(err)

	stored, err := GetPost(database.C, post.ID)
	s.Require().NoError(err)
	s.Equal("edited text", stored.Text)
	s.WithinDuration(createdAt, stored.CreatedAt, time.Second)
}

func (s *ServicesSuite) TestPaginator() {
	cases := []struct {
		count    int64
		raw      string
		expected int
	}{
		{13, "", 1},
		{13, "1", 1},
		{13, "2", 2},
		{13, " 2", 2},
		{13, "2\n", 2},
		{13, "+2", 2},
		{13, "2.0", 1},
		{13, "1.5", 1},
		{13, "1e1", 1},
		{13, "inf", 1},
		{13, "abc", 1},
		{13, "0", 2},
		{13, "-3", 2},
		{13, "99", 2},
		{0, "5", 1},
		{20, "3", 2},
	}
	for _, tc := range cases {
		s.Run(fmt.Sprintf("%d items page %q", tc.count, tc.raw), func() {
			paginator := Paginator{Count: tc.count, PerPage: 10}
			s.Equal(tc.expected, paginator.Number(tc.raw))
		})
	}
}

func (s *ServicesSuite) TestListPostPage() {
	author := s.newAccount("user_a")
	other := s.newAccount("author_p")
	group := s.newGroup("1")
	for i := 0; i < 13; i++ {
		s.newPost(author, &group, fmt.Sprintf("text%d", i))
	}
	s.newPost(other, nil, "ungrouped")

	s.Run("splits every listing into pages", func() {
		for _, tx := range []func() Page[models.Post]{
			func() Page[models.Post] { p, _ := ListPostPage(FilterPostWithGroup(database.C, group), ""); return p },
			func() Page[models.Post] { p, _ := ListPostPage(FilterPostWithAuthor(database.C, author), ""); return p },
		} {
			page := tx()
			s.Len(page.Data, 10)
			s.EqualValues(13, page.Count)
			s.True(page.HasNext)
		}

		page, err := ListPostPage(FilterPostWithGroup(database.C, group), "2")
		s.Require().NoError(err)
		s.Len(page.Data, 3)
		s.False(page.HasNext)
		s.True(page.HasPrevious)
	})

	s.Run("orders newest first", func() {
		page, err := ListPostPage(database.C, "1")
		s.Require().NoError(err)
		s.Equal("ungrouped", page.Data[0].Text)
		s.Equal("text12", page.Data[1].Text)
		s.EqualValues(14, page.Count)
	})

	s.Run("empty listing has one empty page", func() {
		page, err := ListPostPage(FilterPostWithAuthor(database.C, s.newAccount("nobody")), "3")
		s.Require().NoError(err)
		s.Equal(1, page.Number)
		s.Equal(1, page.NumPages)
		s.Empty(page.Data)
		s.NotNil(page.Data)
	})
}

func (s *ServicesSuite) TestFollows() {
	user := s.newAccount("user")
	author := s.newAccount("author")

	s.Run("follow then unfollow leaves no edge", func() {
		created, err := FollowAccount(user, author)
		s.Require().NoError(err)
		s.True(created)
		s.True(s.isFollowing(user, author))
		s.False(s.isFollowing(author, user))

		created, err = FollowAccount(user, author)
		s.Require().NoError(err)
		s.False(created)

		count, err := CountFollowers(author)
		s.Require().NoError(err)
		s.EqualValues(1, count)

		s.Require().NoError(UnfollowAccount(user, author))
		s.False(s.isFollowing(user, author))
	})

	s.Run("unfollow without edge is a no-op", func() {
		s.Require().NoError(UnfollowAccount(user, author))
		count, err := CountFollowing(user)
		s.Require().NoError(err)
		s.Zero(count)
	})

	s.Run("self follow is ignored", func() {
		created, err := FollowAccount(user, user)
		s.Require().NoError(err)
		s.False(created)
		s.False(s.isFollowing(user, user))
	})
}

func (s *ServicesSuite) TestIsFollowingReportsErrors() {
	user := s.newAccount("user")
	author := s.newAccount("author")

	sqlDB, err := database.C.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())

	following, err := IsFollowing(user, author)
	s.Error(err)
	s.False(following)
}

func (s *ServicesSuite) TestFeed() {
	follower := s.newAccount("follower")
	stranger := s.newAccount("stranger")
	first := s.newAccount("first")
	second := s.newAccount("second")

	s.newPost(first, nil, "from first")
	s.newPost(second, nil, "from second")
	s.newPost(stranger, nil, "from stranger")

	_, err := FollowAccount(follower, first)
	s.Require().NoError(err)
	_, err = FollowAccount(follower, second)
	s.Require().NoError(err)

	page, err := GetFeed(follower, "")
	s.Require().NoError(err)
	s.Require().Len(page.Data, 2)
	s.Equal("from second", page.Data[0].Text)
	s.Equal("from first", page.Data[1].Text)

	page, err = GetFeed(stranger, "")
	s.Require().NoError(err)
	s.Empty(page.Data)
}

func (s *ServicesSuite) TestComments() {
	author := s.newAccount("author")
	reader := s.newAccount("reader")
	post := s.newPost(author, nil, "post")

	_, err := NewComment(reader, post, "first")
	s.Require().NoError(err)
	_, err = NewComment(author, post, "second")
	s.Require().NoError(err)
	_, err = NewComment(author, post, "")
	s.Error(err)

	comments, err := ListComment(post)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal("second", comments[0].Text)
	s.Equal("author", comments[0].Author.Name)

	s.Require().NoError(DeletePost(post))
	count, err := CountComment(post)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *ServicesSuite) TestDeleteAccount() {
	author := s.newAccount("post_author")
	reader := s.newAccount("reader")
	post := s.newPost(author, nil, "text")
	_, err := NewComment(author, post, "own comment")
	s.Require().NoError(err)
	_, err = NewComment(reader, post, "reader comment")
	s.Require().NoError(err)
	_, err = FollowAccount(reader, author)
	s.Require().NoError(err)
	_, err = FollowAccount(author, reader)
	s.Require().NoError(err)

	s.Require().NoError(DeleteAccount(author))

	_, err = GetAccountWithID(author.ID)
	s.Error(err)
	count, err := CountPost(database.C)
	s.Require().NoError(err)
	s.Zero(count)
	count, err = CountComment(post)
	s.Require().NoError(err)
	s.Zero(count)
	count, err = CountFollowing(reader)
	s.Require().NoError(err)
	s.Zero(count)
	count, err = CountFollowers(reader)
	s.Require().NoError(err)
	s.Zero(count)

	_, err = GetAccountWithID(reader.ID)
	s.NoError(err)
}

func (s *ServicesSuite) TestDeleteGroup() {
	author := s.newAccount("author")
	group := s.newGroup("doomed")
	post := s.newPost(author, &group, "text")

	s.Require().NoError(DeleteGroup(group))

	_, err := GetGroup("doomed")
	s.Error(err)
	stored, err := GetPost(database.C, post.ID)
	s.Require().NoError(err)
	s.Nil(stored.GroupID)
	s.Nil(stored.Group)
}

type failingCloser struct {
	bytes.Buffer
}

func (v *failingCloser) Close() error {
	return errors.New("disk full")
}

func (s *ServicesSuite) TestWriteMediaReportsCloseErrors() {
	var dst failingCloser
	err := writeMedia(&dst, bytes.NewReader(smallGif))
	s.EqualError(err, "disk full")
}

func (s *ServicesSuite) TestSaveImage() {
	s.Run("stores images under the media root", func() {
		name, err := SaveImage(s.fileHeader("small.gif", smallGif))
		s.Require().NoError(err)
		s.Equal(".gif", filepath.Ext(name))
		s.FileExists(filepath.Join(s.mediaRoot, filepath.FromSlash(name)))

		s.Require().NoError(DeleteImage(name))
		s.NoFileExists(filepath.Join(s.mediaRoot, filepath.FromSlash(name)))
	})

	s.Run("rejects other files", func() {
		_, err := SaveImage(s.fileHeader("notes.txt", []byte("just some text")))
		s.ErrorIs(err, ErrInvalidImage)
	})

	s.Run("rejects vector images", func() {
		svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)
		name, err := SaveImage(s.fileHeader("evil.svg", svg))
		s.ErrorIs(err, ErrInvalidImage)
		s.Empty(name)

		entries, _ := os.ReadDir(filepath.Join(s.mediaRoot, ImageUploadDir))
		s.Empty(entries)
	})

	s.Run("rejects oversized files", func() {
		viper.Set("media.max_size", 8)
		defer viper.Set("media.max_size", 0)
		_, err := SaveImage(s.fileHeader("small.gif", smallGif))
		s.ErrorIs(err, ErrImageTooLarge)
	})
}

func (s *ServicesSuite) TestCleanupOrphanMedia() {
	author := s.newAccount("author")
	used, err := SaveImage(s.fileHeader("used.gif", smallGif))
	s.Require().NoError(err)
	orphan, err := SaveImage(s.fileHeader("orphan.gif", smallGif))
	s.Require().NoError(err)
	fresh, err := SaveImage(s.fileHeader("fresh.gif", smallGif))
	s.Require().NoError(err)

	_, err = NewPost(author, models.Post{Text: "with image", Image: used})
	s.Require().NoError(err)

	old := time.Now().Add(-2 * time.Hour)
	for _, name := range []string{used, orphan} {
		s.Require().NoError(os.Chtimes(filepath.Join(s.mediaRoot, filepath.FromSlash(name)), old, old))
	}

	count, err := CleanupOrphanMedia(time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Equal(1, count)
	s.FileExists(filepath.Join(s.mediaRoot, filepath.FromSlash(used)))
	s.FileExists(filepath.Join(s.mediaRoot, filepath.FromSlash(fresh)))
	s.NoFileExists(filepath.Join(s.mediaRoot, filepath.FromSlash(orphan)))
}
