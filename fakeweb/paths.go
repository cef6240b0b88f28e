package fakeweb

import (
	"fmt"
	"strings"
)

// splitFilePath splits an absolute URL path after the first segment that contains a dot. The
// trailing part becomes the path info only if there is something after its leading slash.
func splitFilePath(p string) (filePath, pathInfo string) {
	dot := strings.IndexByte(p, '.')
	if dot < 0 {
		return p, ""
	}
	slash := strings.IndexByte(p[dot:], '/')
	if slash < 0 {
		return p, ""
	}
	slash += dot
	if slash+1 >= len(p) {
		return p, ""
	}
	return p[:slash], p[slash:]
}

// toAppRelative replaces the application root prefix of a virtual path with "~".
func toAppRelative(virtualPath, appPath string) (string, error) {
	root := strings.TrimSuffix(appPath, "/")
	if root == "" {
		return "~" + virtualPath, nil
	}
	switch {
	case strings.EqualFold(virtualPath, root):
		return "~/", nil
	case len(virtualPath) > len(root) && strings.EqualFold(virtualPath[:len(root)], root) && virtualPath[len(root)] == '/':
		return "~" + virtualPath[len(root):], nil
	}
	return "", invalidArgument("applicationPath",
		fmt.Sprintf("the path %q is not under the application root %q", virtualPath, appPath))
}
