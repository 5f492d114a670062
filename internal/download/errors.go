package download

import "errors"

var (
	ErrUnknownDownloader = errors.New("unknown downloader")
	ErrDownload          = errors.New("download failed")
)
