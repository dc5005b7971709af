// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
gcsctl builds, queries, and inspects Golomb-coded sets from the command line.

The serialized form of a set does not carry its parameters.  The build command
prints N, M, the salt, and the hash function name needed to query the set, and
they must be passed back to the query and inspect commands.

Usage:

	gcsctl [OPTIONS] <build | query | inspect | salt>

Application Options:

	-V, --version     Display version information and exit
	-d, --debuglevel= Logging level {trace, debug, info, warn, error, critical}
	    --logfile=    Also write logs to this file, rotating it as it grows

Examples:

	$ gcsctl build --in items.txt --m 1024 --out items.gcs
	$ gcsctl query --payload items.gcs --n 3 --m 1024 --salt <salt> alpha zeta
	$ gcsctl inspect --payload items.gcs --n 3 --m 1024 --salt <salt>
*/
package main
