// Command virtmem simulates demand-paged virtual memory.
//
//	virtmem <npages> <nframes> <fifo|rand|clock> <sort|scan|focus>
package main

import "github.com/sarchlab/virtmem/virtmem/cmd"

func main() {
	cmd.Execute()
}
