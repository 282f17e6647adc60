package downloader

import (
	"context"
	"fmt"
	"sync"
)

// Serves canned responses from memory. Used in tests and dry runs.
type MemoryDownloader struct {
	mutex     sync.Mutex
	responses map[string][]byte
}

func NewMemory() *MemoryDownloader {
	return &MemoryDownloader{
		responses: map[string][]byte{},
	}
}

func (d *MemoryDownloader) Put(url string, body []byte) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.responses[url] = body
}

func (d *MemoryDownloader) Get(
	ctx context.Context,
	url string,
	headers map[string]string,
	options GetOptions,
) ([]byte, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	body, found := d.responses[url]
	if !found {
		return nil, fmt.Errorf("no response for %s", url)
	}

	return body, nil
}
