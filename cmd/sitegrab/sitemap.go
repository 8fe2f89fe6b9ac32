package main

import "fmt"

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	urls, err := deps.Discoverer.Discover(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "no sitemap found")
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
