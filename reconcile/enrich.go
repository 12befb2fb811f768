package reconcile

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/javaloayza/postboard/models"
)

// WordsPerMinute is the reading speed behind ReadingTime.
const WordsPerMinute = 200

// imagePercent of posts carry a cover image.
const imagePercent = 70

// Enrich attaches the author and the display URLs to post.
func Enrich(post models.Post, user models.User) models.EnrichedPost {
	ep := models.EnrichedPost{
		Post:     post,
		User:     user,
		Avatar:   AvatarURL(post),
		HasImage: HasImage(post.ID),
	}
	if ep.HasImage {
		ep.PostImage = "https://picsum.photos/400/250?random=" + strconv.Itoa(post.ID)
	}
	return ep
}

// EnrichDetail is Enrich plus word count and reading time.
func EnrichDetail(post models.Post, user models.User) models.EnrichedPost {
	ep := Enrich(post, user)
	ep.WordCount = WordCount(post.Body)
	ep.ReadingTime = ReadingTime(ep.WordCount)
	return ep
}

// HasImage is a stable function of the id so repeated reads agree.
func HasImage(id int) bool {
	return xxhash.Sum64String(strconv.Itoa(id))%100 < imagePercent
}

func AvatarURL(post models.Post) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=user" + strconv.Itoa(post.UserID) + "post" + strconv.Itoa(post.ID)
}

// AvatarFallbackURL renders initials for name when the primary avatar fails to load.
func AvatarFallbackURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// Initials returns up to two upper-cased leading letters of the words in name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// WordCount counts single-space separated tokens, so an empty body counts as one.
func WordCount(body string) int {
	return len(strings.Split(body, " "))
}

// ReadingTime is ceil(words / WordsPerMinute) minutes.
func ReadingTime(words int) int {
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
