// Package yaml loads selector overrides from YAML files.
//
// A file maps platform names to partial selector sets:
//
//	twitter:
//	  postText: '[data-testid="tweetText"]'
//	weibo:
//	  postContainer: 'div.wbpro-list'
//
// Fields left out keep the platform's built-in selector.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/threadkit"
	"gopkg.in/yaml.v3"
)

var knownPlatforms = map[threadkit.PlatformName]bool{
	threadkit.PlatformTwitter: true,
	threadkit.PlatformWeibo:   true,
}

// LoadSelectors decodes selector overrides from r. Unknown platforms and
// unknown selector fields are rejected with EINVALID. An empty document
// yields empty overrides.
func LoadSelectors(r io.Reader) (threadkit.SelectorOverrides, error) {
	overrides := threadkit.SelectorOverrides{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&overrides); err != nil {
		if errors.Is(err, io.EOF) {
			return threadkit.SelectorOverrides{}, nil
		}
		return nil, threadkit.Errorf(threadkit.EINVALID, "decoding selectors: %v", err)
	}

	for name := range overrides {
		if !knownPlatforms[name] {
			return nil, threadkit.Errorf(threadkit.EINVALID, "unknown platform %q in selectors", name)
		}
	}
	return overrides, nil
}

// LoadSelectorsFile reads overrides from the file at path.
func LoadSelectorsFile(path string) (threadkit.SelectorOverrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening selectors file: %w", err)
	}
	defer f.Close()

	return LoadSelectors(f)
}
