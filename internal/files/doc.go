// Package files provides discovery and backup of merchant export files.
// Discovery is extension-based (CSV and Excel); classification into
// export kinds is filename-signature-based with the most specific
// signature checked first.
package files
