package entity

// Kind is the closed set of entity types accepted by quick-add.
type Kind string

const (
	KindPost     Kind = "post"
	KindUser     Kind = "user"
	KindCategory Kind = "category"
	KindHashtag  Kind = "hashtag"
)

var Kinds = []Kind{KindPost, KindUser, KindCategory, KindHashtag}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
