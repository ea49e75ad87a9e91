package scraper

const indexHTML = `<html><head><title>nginx documentation</title></head><body>
<div id="content">
<h4>Introduction</h4>
<ul class="compact">
<li><a href="install.html">Installing nginx</a></li>
<li><a href="beginners_guide.html">Beginner's Guide</a></li>
</ul>
<h4>Modules reference</h4>
<ul class="compact">
<li><a href="http/ngx_http_core_module.html">ngx_http_core_module</a></li>
<li><a href="http/ngx_http_random_module.html">ngx_http_random_module</a></li>
<li><a href="http/ngx_http_ssl_module.html">
    ngx_http_ssl_module
</a></li>
<li><a href="http/ngx_http_core_module.html">ngx_http_core_module</a></li>
<li><a href="/en/docs/stream/ngx_stream_core_module.html">ngx_stream_core_module</a></li>
</ul>
<ul>
<li><a href="http/ngx_http_gzip_module.html">ngx_http_gzip_module</a></li>
</ul>
</div>
</body></html>`

const gzipModuleHTML = `<html><body>
<div id="content">
<h2>Module ngx_http_gzip_module</h2>
<a name="directives"></a><center><h4>Directives</h4></center>
<a name="gzip"></a><div class="directive"><table cellspacing="0" cellpadding="0"><tr><th>Syntax:</th><td><code><strong>gzip</strong>
  <code>on</code> |
  <code>off</code>;</code></td></tr><tr><th>Default:</th><td><pre>gzip off;</pre></td></tr><tr><th>Context:</th><td><code>http</code>, <code>server</code>, <code>location</code>, <code>if in location</code></td></tr></table></div>
<p>Enables or disables gzipping of responses.</p>
<a name="gzip_buffers"></a><div class="directive"><table cellspacing="0" cellpadding="0"><tr><th>Syntax:</th><td><code><strong>gzip_buffers</strong> <code><i>number</i> <i>size</i></code>;</code></td></tr><tr><th>Default:</th><td><pre>gzip_buffers 32 4k|16 8k;</pre></td></tr><tr><th>Context:</th><td><code>http</code>, <code>server</code>, <code>location</code></td></tr></table></div>
<p>Sets the number and size of buffers.</p>
<p>By default, the buffer size is equal to one memory page.</p>
<a name="server"></a><div class="directive"><table cellspacing="0" cellpadding="0"><tr><th>Syntax:</th><td><code><strong>server</strong> { ... }</code></td></tr><tr><th>Default:</th><td>—</td></tr><tr><th>Context:</th><td><code>http</code></td></tr></table></div>
<p>Sets configuration for a virtual server.</p>
<a name="gzip_api"></a><div class="directive"><table cellspacing="0" cellpadding="0"><tr><th>Syntax:</th><td><code><strong>gzip_api</strong>;</code></td></tr><tr><th>Default:</th><td>—</td></tr><tr><th>Context:</th><td><code>location</code></td></tr></table></div>
<p>Turns on the REST API.</p>
<blockquote class="note">This directive is available as part of our <a href="http://nginx.com/products/">commercial subscription</a>.</blockquote>
<p>Trailing text.</p>
<a name="gzip_vary"></a><div class="directive"><table cellspacing="0" cellpadding="0"><tr><th>Syntax:</th><td><code><strong>gzip_vary</strong> <code>on</code> | <code>off</code>;</code></td></tr><tr><th>Default:</th><td>—</td></tr><tr><th>Context:   </th><td><code>http</code></td></tr><tr><th>Appeared  in:</th><td>1.1.2</td></tr></table></div>
<p>Enables inserting the Vary header.</p>
<blockquote class="note">The header is only added once.</blockquote>
<p>See also gunzip.</p>
</div>
</body></html>`
