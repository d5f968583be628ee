package generator

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

type assetCopySummary struct {
	Built int
}

// copyStaticAssets mirrors the configured static directory into the output
// tree, preserving relative paths. Files are copied verbatim.
func (s *service) copyStaticAssets(ctx context.Context, writer artifactWriter) (assetCopySummary, error) {
	summary := assetCopySummary{}
	staticDir := strings.TrimSpace(s.cfg.StaticDir)
	if staticDir == "" {
		return summary, nil
	}

	info, err := os.Stat(staticDir)
	if err != nil {
		if os.IsNotExist(err) {
			return summary, nil
		}
		return summary, fmt.Errorf("generator: stat static dir %s: %w", staticDir, err)
	}
	if !info.IsDir() {
		return summary, fmt.Errorf("generator: static path %s is not a directory", staticDir)
	}

	staticFS := os.DirFS(staticDir)
	walkErr := fs.WalkDir(staticFS, ".", func(rel string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.HasPrefix(path.Base(rel), ".") {
			return nil
		}

		data, err := fs.ReadFile(staticFS, rel)
		if err != nil {
			return fmt.Errorf("generator: read static asset %s: %w", rel, err)
		}

		req := writeFileRequest{
			Path:        rel,
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			Category:    categoryAsset,
			ContentType: detectAssetContentType(rel),
			Checksum:    computeHash(data),
			Metadata: map[string]string{
				"source": path.Join(staticDir, rel),
			},
		}
		if err := writer.WriteFile(ctx, req); err != nil {
			return err
		}
		summary.Built++
		return nil
	})
	if walkErr != nil {
		return summary, walkErr
	}
	return summary, nil
}

func detectAssetContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js", ".mjs":
		return "text/javascript; charset=utf-8"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".ico":
		return "image/x-icon"
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".xml":
		return "application/xml"
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
