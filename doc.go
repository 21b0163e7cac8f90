/*
Package domx stores xml objects in catalogs.

An xml object is a typed view over an xml document: a base interface plus
any number of facets attached to the same document, each reading and writing
its own members. Objects are saved one per file in catalogs, which are
directories named "<name>.catalog" nested below a root directory, or placed
anywhere and registered by name in the system catalog.

The packages are:

	pkg/xmlobject   documents, interfaces, facets and typed members
	pkg/xmltime     timestamps with the catalog text format and sortable keys
	pkg/catalog     catalogs, the system catalog, the error queue and watching
	pkg/fileobject  file descriptions: stat times, size and md5 checksum
	pkg/reference   references to objects in other catalogs
	pkg/storage     the key/value store backing catalogs

Two tools are built on it: xmlfilescan catalogs files, and xmlcatalog lets
scripts insert, fetch, list, move and remove objects.
*/
package domx
