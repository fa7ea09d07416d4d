package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
)

// Key 命名空间化的缓存键。写操作只失效自己影响的键，
// 读方从下一次成功查询重新取数，不做本地修补。
type Key string

const keyPrefix = "lms:"

// MediaListPrefix 媒体列表键的公共前缀，供按前缀批量失效
const MediaListPrefix Key = keyPrefix + "media:list:"

// Namespace 整个键空间的前缀，全量失效（如备份恢复后）用
func Namespace() Key {
	return keyPrefix
}

func CourseList() Key {
	return keyPrefix + "courses"
}

func CourseSections(courseID string) Key {
	return Key(keyPrefix + "courses:" + courseID + ":sections")
}

func SectionLessons(sectionID string) Key {
	return Key(keyPrefix + "sections:" + sectionID + ":lessons")
}

func FolderTree() Key {
	return keyPrefix + "media:folders:tree"
}

// MediaList 过滤条件组合散列进键名，同一条件命中同一份快照
func MediaList(folderID, mimeType, search string, page, limit int) Key {
	raw := strings.Join([]string{folderID, mimeType, search, strconv.Itoa(page), strconv.Itoa(limit)}, "|")
	sum := sha1.Sum([]byte(raw))
	return MediaListPrefix + Key(hex.EncodeToString(sum[:8]))
}

func SettingsGroup(group string) Key {
	return Key(keyPrefix + "settings:" + group)
}

func RoleList() Key {
	return keyPrefix + "roles"
}

func PermissionList() Key {
	return keyPrefix + "permissions"
}
